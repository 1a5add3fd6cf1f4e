package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSONArray decodes a JSON array of objects from model output,
// tolerating markdown code fences and surrounding prose. Returns
// ErrUnparseable when no decodable array is present.
func ExtractJSONArray(text string, out interface{}) error {
	text = strings.TrimSpace(stripFences(text))
	if text == "" {
		return ErrUnparseable
	}

	// Models occasionally wrap the array in commentary; cut to the outermost
	// brackets before decoding.
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return ErrUnparseable
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), out); err != nil {
		return ErrUnparseable
	}
	return nil
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	endIdx := len(lines) - 1
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			endIdx = i
			break
		}
	}
	return strings.Join(lines[1:endIdx], "\n")
}
