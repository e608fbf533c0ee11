package brain

import (
	"strconv"
	"strings"
)

// ElementKind discriminates the variants of a StateElement.
type ElementKind uint8

const (
	// KindWord is a normalized, lower-cased token from a training line.
	KindWord ElementKind = iota
	// KindStart marks the beginning of a sentence.
	KindStart
	// KindEnd marks the end of a sentence.
	KindEnd
	// KindPlaceholder pads tokenized sequences so window extraction never
	// needs boundary special cases. It is never recorded as a transition.
	KindPlaceholder
)

// StateElement is a single unit of a state: either a word or a sentence
// marker. The zero value is an empty word, which the tokenizer never emits.
type StateElement struct {
	Kind ElementKind
	Word string
}

// Word returns a word element for the given token.
func Word(w string) StateElement { return StateElement{Kind: KindWord, Word: w} }

// The three marker elements.
var (
	Start       = StateElement{Kind: KindStart}
	End         = StateElement{Kind: KindEnd}
	Placeholder = StateElement{Kind: KindPlaceholder}
)

// IsWord reports whether the element carries a word.
func (e StateElement) IsWord() bool { return e.Kind == KindWord }

// String renders the element for logs and debugging output.
func (e StateElement) String() string {
	switch e.Kind {
	case KindWord:
		return e.Word
	case KindStart:
		return "<start>"
	case KindEnd:
		return "<end>"
	default:
		return "<pad>"
	}
}

// keySep joins encoded elements inside a state key.
const keySep = '\x1f'

// stateKey encodes an ordered element sequence as a store key. Words are
// length-prefixed, so a token that happens to contain the separator byte
// (whitespace splitting does not strip it) can never alias a longer state:
// two states share a key iff their sequences are equal element for element.
func stateKey(elems []StateElement) string {
	var sb strings.Builder
	for i, e := range elems {
		if i > 0 {
			sb.WriteByte(keySep)
		}
		switch e.Kind {
		case KindWord:
			sb.WriteByte('w')
			sb.WriteString(strconv.Itoa(len(e.Word)))
			sb.WriteByte(':')
			sb.WriteString(e.Word)
		case KindStart:
			sb.WriteByte('s')
		case KindEnd:
			sb.WriteByte('e')
		case KindPlaceholder:
			sb.WriteByte('p')
		}
	}
	return sb.String()
}
