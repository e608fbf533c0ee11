package brain

import (
	"log/slog"
	"strings"
)

// maxWalkSteps caps each direction of the sentence walk. Every well-formed
// training line records Start/End-bounded states, so a boundary is normally
// reached quickly; the cap guarantees termination on malformed or imported
// data where that guarantee does not hold. Hitting it is treated as reaching
// the boundary.
const maxWalkSteps = 4096

// Reply generates a response to the input line, subject to gating: an empty
// store, the Mute flag, or a failed ReplyRate draw all produce no output
// (ok == false). Whenever no output is produced and Training is enabled, the
// input is still ingested, so a quiet brain keeps learning.
func (b *Brain) Reply(input string) (string, bool) {
	return b.generate(input, false)
}

// ForceReply generates a response bypassing the Mute and ReplyRate gates. It
// always returns output unless the store is empty, in which case it returns
// the empty string.
func (b *Brain) ForceReply(input string) string {
	out, _ := b.generate(input, true)
	return out
}

func (b *Brain) generate(input string, bypass bool) (string, bool) {
	if len(b.states) == 0 {
		b.learnInput(input)
		return "", false
	}
	if b.Config.Mute && !bypass {
		b.learnInput(input)
		return "", false
	}
	if !bypass && !b.rng.Bernoulli(b.Config.ReplyRate) {
		b.learnInput(input)
		return "", false
	}

	sentence := []StateElement{b.pickSeed(input)}
	sentence = b.extend(backward, sentence)
	sentence = b.extend(forward, sentence)

	// The input is learned after the walk, so a reply never feeds on the
	// line it is answering.
	b.learnInput(input)

	words := make([]string, 0, len(sentence))
	for _, e := range sentence {
		if e.IsWord() {
			words = append(words, e.Word)
		}
	}
	out := strings.Join(words, " ")

	b.logger.Debug("Generated reply",
		slog.Int("sentence_elements", len(sentence)),
		slog.Int("words", len(words)),
	)
	return out, true
}

// learnInput ingests the raw input line when training is enabled.
func (b *Brain) learnInput(input string) {
	if b.Config.Training {
		b.Ingest(input)
	}
}

// pickSeed chooses the single element the sentence grows from. The input's
// words are shuffled and popped one by one; the first word contained in any
// state selects one of those states uniformly, and then a uniform element
// within it. If no input word is known, a state is drawn uniformly from the
// whole store instead.
//
// The per-word selections run on a clone of the random source, so the number
// of candidates inspected does not disturb the primary sequence used by the
// walk itself.
func (b *Brain) pickSeed(input string) StateElement {
	words := splitWords(input)
	b.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	nested := b.rng.Clone()
	for i := len(words) - 1; i >= 0; i-- {
		keys := b.byWord[words[i]]
		if len(keys) == 0 {
			continue
		}
		node := b.states[keys[nested.IntN(len(keys))]]
		return node.elems[nested.IntN(len(node.elems))]
	}

	node := b.states[b.keys[b.rng.IntN(len(b.keys))]]
	return node.elems[b.rng.IntN(len(node.elems))]
}

// extend grows the sentence toward one boundary marker: prepending elements
// until Start when walking backward, appending until End when walking
// forward.
func (b *Brain) extend(dir direction, sentence []StateElement) []StateElement {
	for steps := 0; ; steps++ {
		if dir == backward && sentence[0].Kind == KindStart {
			return sentence
		}
		if dir == forward && sentence[len(sentence)-1].Kind == KindEnd {
			return sentence
		}
		if steps >= maxWalkSteps {
			b.logger.Debug("Sentence walk hit iteration cap",
				slog.Int("direction", int(dir)),
				slog.Int("sentence_elements", len(sentence)),
			)
			return sentence
		}

		elem := b.nextElement(dir, sentence)
		if dir == backward {
			sentence = append([]StateElement{elem}, sentence...)
		} else {
			sentence = append(sentence, elem)
		}
	}
}

// nextElement computes the element adjacent to the sentence in the given
// direction. Candidate context lengths are tried in ascending order over
// [MinGenerationStateSize, MaxGenerationStateSize); for each length L the
// min(L, len(sentence)) elements at the relevant end of the sentence are
// looked up as a state, and the first hit wins, so shorter, more general
// contexts beat longer ones. With no hit at any length the direction
// resolves to its boundary marker, terminating that side of the walk.
func (b *Brain) nextElement(dir direction, sentence []StateElement) StateElement {
	boundary := End
	if dir == backward {
		boundary = Start
	}

	var tr *Transition
	for size := b.Config.MinGenerationStateSize; size < b.Config.MaxGenerationStateSize; size++ {
		n := min(size, len(sentence))

		var key string
		if dir == backward {
			key = stateKey(sentence[:n])
		} else {
			key = stateKey(sentence[len(sentence)-n:])
		}
		if node, ok := b.states[key]; ok {
			tr = &node.tr
			break
		}
	}
	if tr == nil {
		return boundary
	}

	elem, ok := pickWeighted(b.rng, tr.side(dir))
	if !ok {
		return boundary
	}
	return elem
}
