// internal/ai/json.go
package ai

import (
	"errors"
	"strings"
)

// extractJSONObject returns the first-`{`-to-last-`}` span of the model
// output. Models wrap JSON in prose or markdown fences; the span extraction
// tolerates both.
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", errors.New("no JSON object found in model output")
	}
	return text[start : end+1], nil
}
