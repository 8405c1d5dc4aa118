package content

// PreviewLimit is the default preview length for topic list entries.
const PreviewLimit = 200

// TruncatePreview returns at most limit characters of text, appending
// an ellipsis when anything was cut. Limits are counted in runes so a
// multi-byte character is never split.
func TruncatePreview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
