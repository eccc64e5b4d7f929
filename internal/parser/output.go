package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSONObject extracts the JSON object from raw model text. Markdown code fences and
// leading prose are tolerated; anything that is not a JSON object fails with ErrInvalidOutput.
func DecodeJSONObject(text string) (json.RawMessage, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if start, end := strings.Index(s, "{"), strings.LastIndex(s, "}"); start >= 0 && end > start {
		s = s[start : end+1]
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v (raw: %s)", ErrInvalidOutput, err, Truncate(text, 500))
	}
	return json.RawMessage(s), nil
}

// Truncate shortens s to maxLen bytes, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
