package content

import (
	"reflect"
	"strings"
	"testing"

	"github.com/studybuddy-ai/studybuddy/internal/domain"
)

func TestSegmentHeadingThenParagraphs(t *testing.T) {
	input := "PHOTOSYNTHESIS OVERVIEW: Plants convert light. They use chlorophyll. It happens in chloroplasts. Water is also needed."

	blocks := Segment(input)
	if len(blocks) < 2 {
		t.Fatalf("got %d blocks, want at least 2: %+v", len(blocks), blocks)
	}

	if blocks[0].Kind != domain.BlockHeading {
		t.Errorf("first block kind = %v, want heading", blocks[0].Kind)
	}
	if blocks[0].Text != "PHOTOSYNTHESIS OVERVIEW:" {
		t.Errorf("first block = %q, want %q", blocks[0].Text, "PHOTOSYNTHESIS OVERVIEW:")
	}

	for _, blk := range blocks[1:] {
		if blk.Kind != domain.BlockParagraph {
			t.Errorf("block %q kind = %v, want paragraph", blk.Text, blk.Kind)
		}
		// Forced break caps paragraphs at 3 sentence units
		if n := strings.Count(blk.Text, "."); n > 3 {
			t.Errorf("paragraph %q holds %d sentences, cap is 3", blk.Text, n)
		}
	}
}

func TestSegmentBullets(t *testing.T) {
	blocks := Segment("• Mitochondria\n• Chloroplasts")

	want := []domain.Block{
		{Kind: domain.BlockBullet, Text: "Mitochondria"},
		{Kind: domain.BlockBullet, Text: "Chloroplasts"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("blocks = %+v, want %+v", blocks, want)
	}
}

func TestSegmentBulletMarkerVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  string
	}{
		{"dot", "• Ribosomes", "Ribosomes"},
		{"checkmark", "✓ Done reviewing", "Done reviewing"},
		{"asterisk", "* Key point", "Key point"},
		{"hyphen", "- First item", "First item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Segment(tt.input)
			if len(blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(blocks))
			}
			if blocks[0].Kind != domain.BlockBullet {
				t.Errorf("kind = %v, want bullet", blocks[0].Kind)
			}
			if blocks[0].Text != tt.text {
				t.Errorf("text = %q, want %q", blocks[0].Text, tt.text)
			}
		})
	}
}

func TestSegmentSingleParagraph(t *testing.T) {
	blocks := Segment("not json at all")
	want := []domain.Block{{Kind: domain.BlockParagraph, Text: "not json at all"}}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("blocks = %+v, want %+v", blocks, want)
	}
}

func TestSegmentParagraphCap(t *testing.T) {
	input := "One sentence here. Two sentences now. Three in a row. Four arrives. Five closes it."

	blocks := Segment(input)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(blocks), blocks)
	}
	if blocks[0].Text != "One sentence here. Two sentences now. Three in a row." {
		t.Errorf("first paragraph = %q", blocks[0].Text)
	}
	if blocks[1].Text != "Four arrives. Five closes it." {
		t.Errorf("second paragraph = %q", blocks[1].Text)
	}
}

func TestSegmentWhitespaceIdempotence(t *testing.T) {
	inputs := []string{
		"SOME LONG HEADING: First sentence.   Second\tsentence.\n\nThird one here.",
		"• Alpha\n\t• Beta\n  plain trailing text.",
		"  leading and trailing   ",
	}

	for _, input := range inputs {
		collapsed := strings.TrimSpace(whitespaceRun.ReplaceAllString(input, " "))
		if !reflect.DeepEqual(Segment(input), Segment(collapsed)) {
			t.Errorf("Segment(%q) differs from Segment of collapsed form", input)
		}
	}
}

func TestSegmentEmpty(t *testing.T) {
	if blocks := Segment("   \n\t "); blocks != nil {
		t.Errorf("blocks = %+v, want nil", blocks)
	}
}

func TestIsHeadingText(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"PHOTOSYNTHESIS OVERVIEW:", true},
		{"CELL DIVISION", true},
		{"ABCDE", true},
		{"ABCD", false},             // below 5 chars
		{"Mixed Case Heading", false},
		{"HAS A DIGIT 9", false},
		{strings.Repeat("A", 60), true},
		{strings.Repeat("A", 61), false},
		{strings.Repeat("A", 60) + ":", true}, // colon not counted
		{":::::", false},                      // no letters
	}

	for _, tt := range tests {
		if got := isHeadingText(tt.input); got != tt.want {
			t.Errorf("isHeadingText(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
