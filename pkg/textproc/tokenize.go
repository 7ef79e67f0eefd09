// Package textproc turns raw French text into the fixed-length numeric
// feature vectors the classifiers consume. It owns tokenization, stemming,
// vocabulary construction, and term-frequency extraction.
package textproc

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/french"
)

// Tokenize lower-cases text and splits it into tokens on any rune that is not
// a letter or digit. Apostrophes split elisions ("j'aimerais" -> "j",
// "aimerais"); accented letters are preserved.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// Stem reduces a lower-cased token to its French Snowball stem. Single-rune
// tokens (left over from elisions) are returned unchanged.
func Stem(token string) string {
	if len([]rune(token)) <= 1 {
		return token
	}
	return french.Stem(token, false)
}

// TokenizeAndStem is the canonical text normalization used everywhere a text
// meets a vocabulary: Tokenize then Stem each token.
func TokenizeAndStem(text string) []string {
	tokens := Tokenize(text)
	stems := make([]string, len(tokens))
	for i, tok := range tokens {
		stems[i] = Stem(tok)
	}
	return stems
}
