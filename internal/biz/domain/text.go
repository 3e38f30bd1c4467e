package domain

import "strings"

// minTokenLen is the minimum token length counted in word-overlap scoring.
// Shorter words ("a", "to", "my") carry almost no signal.
const minTokenLen = 3

// Normalize lower-cases and trims text for comparison.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Tokenize splits normalized text into whitespace-delimited tokens.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}

// QualifyingTokens returns the tokens eligible for word-overlap scoring.
// No stemming, no punctuation stripping beyond whitespace splitting.
func QualifyingTokens(text string) []string {
	var result []string
	for _, tok := range Tokenize(text) {
		if len(tok) >= minTokenLen {
			result = append(result, tok)
		}
	}
	return result
}
