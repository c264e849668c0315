package llm

import (
	"encoding/json"
	"strings"
)

// ParseDraft recovers a JSON value from a model reply. It never fails:
//  1. the whole reply as JSON,
//  2. else the span from the first '{' to the last '}',
//  3. else {"text": reply}.
//
// The shape of the recovered value is not checked.
func ParseDraft(content string) any {
	if v, ok := decodeJSON(content); ok {
		return v
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end >= start {
		if v, ok := decodeJSON(content[start : end+1]); ok {
			return v
		}
	}

	return map[string]any{"text": content}
}

func decodeJSON(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}
