package brain

import (
	"math"
	"testing"
)

func TestStatsEmptyStore(t *testing.T) {
	b := newTestBrain(t, DefaultConfig())

	s := b.Stats()
	if s.TotalStates != 0 || s.TotalTransitions != 0 || s.TotalWords != 0 {
		t.Errorf("expected zeroed stats for empty store, got %+v", s)
	}
	if s.AvgTransitionsPerState != 0 || math.IsNaN(s.AvgTransitionsPerState) {
		t.Errorf("average must be 0 for an empty store, got %v", s.AvgTransitionsPerState)
	}
}

func TestStatsConsistency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIngestionStateSize = 3

	b := newTestBrain(t, cfg)
	b.Ingest("the cat sat on the mat")
	b.Ingest("one fish two fish")

	s := b.Stats()
	if s.TotalStates != b.Len() {
		t.Errorf("TotalStates = %d, want %d", s.TotalStates, b.Len())
	}

	sum := 0
	for _, node := range b.states {
		sum += len(node.tr.Prev) + len(node.tr.Next)
	}
	if s.TotalTransitions != sum {
		t.Errorf("TotalTransitions = %d, want %d", s.TotalTransitions, sum)
	}

	want := float64(sum) / float64(b.Len())
	if s.AvgTransitionsPerState != want {
		t.Errorf("AvgTransitionsPerState = %v, want %v", s.AvgTransitionsPerState, want)
	}

	// Distinct words across both lines.
	words := map[string]struct{}{}
	for _, node := range b.states {
		for _, e := range node.elems {
			if e.IsWord() {
				words[e.Word] = struct{}{}
			}
		}
	}
	if s.TotalWords != len(words) {
		t.Errorf("TotalWords = %d, want %d", s.TotalWords, len(words))
	}
}
