package extractor

import "strings"

const (
	jsonFence = "```json"
	fence     = "```"
)

// Sanitize strips markdown code fences wrapped around a model reply. The
// result is a fixpoint: Sanitize(Sanitize(s)) == Sanitize(s).
// It does not check that the result is valid JSON.
func Sanitize(text string) string {
	for {
		cleaned := stripFences(text)
		if cleaned == text {
			return cleaned
		}
		text = cleaned
	}
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, jsonFence)
	text = strings.TrimPrefix(text, fence)
	text = strings.TrimSuffix(text, fence)
	return strings.TrimSpace(text)
}
