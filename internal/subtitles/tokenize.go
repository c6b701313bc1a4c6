package subtitles

import (
	"strings"
	"unicode"
)

// Tokens splits subtitle text into lowercase word tokens.
// Anything that is not a letter separates tokens, so punctuation, digits and
// HTML-ish tags common in subtitle files all act as boundaries. Umlauts and
// other non-ASCII letters survive, which matters for German lemmas.
func Tokens(text string) []string {
	// Drop <i>...</i> style markup before splitting
	text = stripTags(text)

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

// stripTags removes angle-bracket markup from subtitle text
func stripTags(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
