package util

import (
	"strings"
)

// Tokenize splits a plain sentence on whitespace. With splitPunct, leading and
// trailing punctuation is detached into tokens of its own ("dog," -> "dog", ",").
func Tokenize(text string, splitPunct bool) []string {
	fields := strings.Fields(text)
	if !splitPunct {
		return fields
	}
	var tokens []string
	for _, f := range fields {
		// "..." and "--" stay whole
		if IsPunctuation(f) {
			tokens = append(tokens, f)
			continue
		}
		runes := []rune(f)
		start, end := 0, len(runes)
		for isPunct(runes[start]) {
			start++
		}
		for end > start && isPunct(runes[end-1]) {
			end--
		}
		for _, r := range runes[:start] {
			tokens = append(tokens, string(r))
		}
		tokens = append(tokens, string(runes[start:end]))
		for _, r := range runes[end:] {
			tokens = append(tokens, string(r))
		}
	}
	return tokens
}
