package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studybuddy-ai/studybuddy/internal/domain"
)

// Render produces a plain-text rendering of classified content. The
// switch is exhaustive over the ParsedContent variants; an unknown
// variant can only mean a new case was added without updating this
// renderer, so it falls back to an empty string.
func Render(pc domain.ParsedContent) string {
	switch v := pc.(type) {
	case domain.SingleTopic:
		return renderTopic(v.Topic)
	case domain.TopicList:
		return renderTopicList(v.Topics)
	case domain.RawJSON:
		return renderRawJSON(v.Value)
	case domain.Prose:
		return renderProse(v.Blocks)
	}
	return ""
}

func renderTopic(t domain.StudyTopic) string {
	var b strings.Builder

	if t.Title != "" {
		b.WriteString(t.Title)
		if t.Category != "" {
			fmt.Fprintf(&b, " (%s)", t.Category)
		}
		b.WriteString("\n\n")
	}

	for _, blk := range Segment(t.Content) {
		writeBlock(&b, blk)
	}

	if len(t.KeyConcepts) > 0 {
		b.WriteString("\nKey concepts:\n")
		for _, c := range t.KeyConcepts {
			fmt.Fprintf(&b, "  - %s\n", c)
		}
	}

	if len(t.StudyQuestions) > 0 {
		b.WriteString("\nStudy questions:\n")
		for _, q := range t.StudyQuestions {
			fmt.Fprintf(&b, "  - %s\n", q)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderTopicList(topics []domain.StudyTopic) string {
	if len(topics) == 0 {
		return "No topics available."
	}

	var b strings.Builder
	for i, t := range topics {
		fmt.Fprintf(&b, "%d. %s", i+1, t.Title)
		if t.Category != "" {
			fmt.Fprintf(&b, " (%s)", t.Category)
		}
		b.WriteString("\n")
		if t.Content != "" {
			fmt.Fprintf(&b, "   %s\n", TruncatePreview(t.Content, PreviewLimit))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRawJSON(value any) string {
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(out)
}

func renderProse(blocks []domain.Block) string {
	var b strings.Builder
	for _, blk := range blocks {
		writeBlock(&b, blk)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeBlock(b *strings.Builder, blk domain.Block) {
	switch blk.Kind {
	case domain.BlockHeading:
		fmt.Fprintf(b, "%s\n", blk.Text)
	case domain.BlockBullet:
		fmt.Fprintf(b, "  - %s\n", blk.Text)
	default:
		fmt.Fprintf(b, "%s\n\n", blk.Text)
	}
}
