package brain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tokenize turns a raw line of text into a bounded element sequence:
//
//	[Placeholder, Start, words..., End, Placeholder]
//
// The line is NFC-normalized and lower-cased, split on whitespace, and empty
// tokens are dropped. The two placeholders exist purely so fixed-width window
// extraction during ingestion never needs boundary logic. An empty line
// yields [Placeholder, Start, End, Placeholder].
func Tokenize(line string) []StateElement {
	words := splitWords(line)

	elems := make([]StateElement, 0, len(words)+4)
	elems = append(elems, Placeholder, Start)
	for _, w := range words {
		elems = append(elems, Word(w))
	}
	return append(elems, End, Placeholder)
}

// splitWords performs the word-level half of tokenization: normalization,
// lower-casing and whitespace splitting, without any markers. Generation
// reuses it to derive seed candidates from an input line.
func splitWords(line string) []string {
	line = strings.ToLower(norm.NFC.String(line))
	return strings.Fields(line)
}
