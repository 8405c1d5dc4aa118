// Package content turns retrieved source blobs into a structured
// representation ready for display. Retrieval returns heterogeneous
// text: study-topic records as JSON, arbitrary JSON fragments, or
// freeform prose extracted from PDFs. Classification is a pure
// function of the input text.
package content

import (
	"encoding/json"
	"strings"

	"github.com/studybuddy-ai/studybuddy/internal/domain"
)

// Classify determines the structural shape of a content blob.
// JSON parse failures are swallowed deliberately: anything that does
// not decode cleanly is treated as prose.
func Classify(text string) domain.ParsedContent {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if pc, ok := classifyJSON(trimmed); ok {
			return pc
		}
	}

	return domain.Prose{Blocks: Segment(text)}
}

func classifyJSON(trimmed string) (domain.ParsedContent, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		// Not an object; a bare array or scalar is still valid JSON
		// and goes out unchanged.
		var value any
		if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
			return nil, false
		}
		return domain.RawJSON{Value: value}, true
	}

	if raw, ok := fields["topics"]; ok {
		if topics, ok := decodeTopicArray(raw); ok {
			if len(topics) == 1 {
				return domain.SingleTopic{Topic: topics[0]}, true
			}
			return domain.TopicList{Topics: topics}, true
		}
	}

	var topic domain.StudyTopic
	if err := json.Unmarshal([]byte(trimmed), &topic); err == nil {
		if topic.Title != "" && topic.Content != "" {
			return domain.SingleTopic{Topic: topic}, true
		}
	}

	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return nil, false
	}
	return domain.RawJSON{Value: value}, true
}

// decodeTopicArray reports whether raw is a JSON array, decoding each
// element into a StudyTopic best-effort. Elements that are not topic
// objects decode to zero values rather than failing the array.
func decodeTopicArray(raw json.RawMessage) ([]domain.StudyTopic, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}

	topics := make([]domain.StudyTopic, len(items))
	for i, item := range items {
		json.Unmarshal(item, &topics[i])
	}
	return topics, true
}
