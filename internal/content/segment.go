package content

import (
	"regexp"
	"strings"

	"github.com/studybuddy-ai/studybuddy/internal/domain"
)

// Behavioral contract of the segmenter. These are not tunables: the
// display layer depends on the exact thresholds.
const (
	headingMinLen     = 5
	headingMaxLen     = 60
	headingDisplayMax = 80
	paragraphUnitCap  = 3
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// bulletMarkers are the characters that introduce a bullet unit when
// followed by whitespace.
var bulletMarkers = []rune{'✓', '•', '-', '*'}

// Segment splits flat prose into heading, bullet and paragraph blocks.
// The input is whitespace-normalized first, so Segment(s) and
// Segment(collapseWhitespace(s)) yield the same blocks.
func Segment(text string) []domain.Block {
	collapsed := strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if collapsed == "" {
		return nil
	}

	units := splitUnits(collapsed)

	var blocks []domain.Block
	var buf []string

	flush := func() {
		if len(buf) == 0 {
			return
		}
		blocks = append(blocks, classifyParagraph(strings.Join(buf, " ")))
		buf = nil
	}

	for _, unit := range units {
		marked := isHeadingUnit(unit) || isBulletUnit(unit)
		bufMarked := len(buf) > 0 && (isHeadingUnit(buf[0]) || isBulletUnit(buf[0]))

		if len(buf) >= paragraphUnitCap || marked || bufMarked {
			flush()
		}
		buf = append(buf, unit)
	}
	flush()

	return blocks
}

// splitUnits breaks collapsed text into sentence-like units. A unit
// ends after terminal punctuation followed by a space, after a
// heading-shaped run ending in a colon, or before a bullet marker.
// Text with no boundary is a single unit.
func splitUnits(s string) []string {
	var units []string
	runes := []rune(s)
	start := 0

	emit := func(end int) {
		unit := strings.TrimSpace(string(runes[start:end]))
		if unit != "" {
			units = append(units, unit)
		}
		start = end
	}

	for i := 0; i < len(runes)-1; i++ {
		if i < start {
			continue
		}
		r, next := runes[i], runes[i+1]

		switch {
		case (r == '.' || r == '!' || r == '?') && next == ' ':
			emit(i + 1)
		case r == ':' && next == ' ' && isHeadingText(strings.TrimSpace(string(runes[start:i+1]))):
			emit(i + 1)
		case r == ' ' && isBulletMarker(next) && i+2 < len(runes) && runes[i+2] == ' ':
			emit(i)
		}
	}
	emit(len(runes))

	return units
}

// isHeadingText reports whether s is entirely upper-case letters and
// spaces, 5 to 60 characters long, with an optional trailing colon.
func isHeadingText(s string) bool {
	body := strings.TrimSuffix(s, ":")
	n := len([]rune(body))
	if n < headingMinLen || n > headingMaxLen {
		return false
	}

	hasLetter := false
	for _, r := range body {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r == ' ':
		default:
			return false
		}
	}
	return hasLetter
}

func isHeadingUnit(unit string) bool {
	return isHeadingText(unit)
}

func isBulletUnit(unit string) bool {
	runes := []rune(unit)
	if len(runes) < 2 {
		return false
	}
	return isBulletMarker(runes[0]) && (runes[1] == ' ' || runes[1] == '\t')
}

func isBulletMarker(r rune) bool {
	for _, m := range bulletMarkers {
		if r == m {
			return true
		}
	}
	return false
}

// classifyParagraph decides how one flushed paragraph is displayed.
// Headings are the all-caps-or-trailing-colon shape under 80 chars;
// bullets have their marker stripped.
func classifyParagraph(p string) domain.Block {
	if isBulletUnit(p) {
		text := strings.TrimSpace(string([]rune(p)[1:]))
		return domain.Block{Kind: domain.BlockBullet, Text: text}
	}

	if len([]rune(p)) < headingDisplayMax && isHeadingText(p) {
		return domain.Block{Kind: domain.BlockHeading, Text: p}
	}

	return domain.Block{Kind: domain.BlockParagraph, Text: p}
}
