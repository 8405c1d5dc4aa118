package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/studybuddy-ai/studybuddy/internal/client"
	"github.com/studybuddy-ai/studybuddy/internal/content"
	"github.com/studybuddy-ai/studybuddy/internal/domain"
)

var (
	serverURL = flag.String("server", "http://localhost:8080", "Study Buddy server URL")

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	bulletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func main() {
	flag.Parse()

	ctx := context.Background()
	c := client.New(*serverURL, http.DefaultClient)
	sessionID := uuid.New().String()

	// Materials are fetched once and cached for the whole session;
	// a failed fetch just means an empty topic list.
	materials := c.Materials(ctx)

	fmt.Println(headingStyle.Render("Study Buddy"))
	if course := materials.Metadata.Course; course != "" {
		fmt.Printf("Course: %s (%d topics)\n", course, len(materials.Topics))
	}
	for _, t := range materials.Topics {
		fmt.Printf("  %s %s\n", bulletStyle.Render("•"), t.Title)
	}
	fmt.Println("\nAsk a question, or say \"quiz me on ...\" to practice. Ctrl-D to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("> "))
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}

		resp, err := c.Chat(ctx, message, sessionID)
		if err != nil {
			// One visible failure per attempt; nothing is retried.
			fmt.Println(errorStyle.Render("Something went wrong. Please try again."))
			continue
		}

		fmt.Println()
		printBlocks(content.Segment(resp.Response))
		printSources(resp.Sources)

		if resp.RelevantMaterialID != "" {
			if topic := findTopic(materials, resp.RelevantMaterialID); topic != nil {
				fmt.Println(sourceStyle.Render("Related topic: " + topic.Title))
			}
		}
		fmt.Println()
	}
}

func printBlocks(blocks []domain.Block) {
	for _, blk := range blocks {
		switch blk.Kind {
		case domain.BlockHeading:
			fmt.Println(headingStyle.Render(blk.Text))
		case domain.BlockBullet:
			fmt.Printf("  %s %s\n", bulletStyle.Render("•"), blk.Text)
		default:
			fmt.Println(blk.Text)
			fmt.Println()
		}
	}
}

func printSources(sources []domain.Source) {
	for i, src := range sources {
		header := fmt.Sprintf("[Source %d] %s (relevance %.0f%%)",
			i+1, src.DocumentName, src.Score*100)
		fmt.Println(sourceStyle.Render(header))

		rendered := content.Render(content.Classify(src.Content))
		for _, line := range strings.Split(rendered, "\n") {
			fmt.Println("  " + line)
		}
	}
}

func findTopic(set *domain.MaterialSet, id string) *domain.StudyTopic {
	for i := range set.Topics {
		if set.Topics[i].ID == id {
			return &set.Topics[i]
		}
	}
	return nil
}
