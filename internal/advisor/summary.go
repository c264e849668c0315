package advisor

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const summaryFallbackLen = 300

// summarize condenses a parsed draft into one line. Drafts with a
// recommendations array render as "action: target (pct%)" joined by " | ".
// Anything else falls back to the start of the draft text or the raw reply.
func summarize(draft any, raw string) string {
	obj, _ := draft.(map[string]any)

	if recs, ok := obj["recommendations"].([]any); ok {
		parts := make([]string, 0, len(recs))
		for _, r := range recs {
			rec, _ := r.(map[string]any)
			parts = append(parts, fmt.Sprintf("%s: %s (%s%%)",
				text(rec["action"]), text(rec["target"]), percent(rec["amount_pct"])))
		}
		return strings.Join(parts, " | ")
	}

	if t, ok := obj["text"].(string); ok && t != "" {
		return truncate(t, summaryFallbackLen)
	}
	return truncate(raw, summaryFallbackLen)
}

// confidence reads a numeric confidence from the draft. Numeric strings count.
func confidence(draft any) *float64 {
	obj, ok := draft.(map[string]any)
	if !ok {
		return nil
	}

	var f float64
	switch v := obj["confidence"].(type) {
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func percent(v any) string {
	switch t := v.(type) {
	case float64:
		if t == 0 {
			return ""
		}
	case string:
		if t == "" {
			return ""
		}
	case bool:
		if !t {
			return ""
		}
	}
	return text(v)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
