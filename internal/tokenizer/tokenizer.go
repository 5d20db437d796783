package tokenizer

import (
	"regexp"
	"strings"
)

// wordRegex matches maximal runs of word characters: letters, digits and underscore.
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize converts a string into a slice of lowercase word tokens.
// Everything that is not a word character acts as a separator. Invalid UTF-8
// never matches, so malformed input simply yields fewer tokens.
func Tokenize(text string) []string {
	// 1. Lowercase
	lowerText := strings.ToLower(text)

	// 2. Extract word runs
	matches := wordRegex.FindAllString(lowerText, -1)

	tokens := make([]string, 0, len(matches)) // Initialize as empty slice, not nil
	tokens = append(tokens, matches...)
	return tokens
}

// TermFrequencies counts occurrences of each token.
func TermFrequencies(tokens []string) map[string]int {
	freqs := make(map[string]int, len(tokens))
	for _, token := range tokens {
		freqs[token]++
	}
	return freqs
}
