package chunker

import "strings"

// EstimateTokens gives a rough token count for a section's content.
// The sections feed a token-budgeted embedding pipeline, so a cheap
// estimate is enough — exact tokenization is not required.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	// Roughly 1.33 tokens per English word.
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
