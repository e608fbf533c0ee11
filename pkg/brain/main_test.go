package brain

import "testing"

// fixedRand is a Rand that always takes the first choice: every uniform draw
// returns 0, shuffles leave order untouched, and Bernoulli succeeds for any
// positive probability. It makes generation walk the single most expected
// path, which is exactly what end-to-end tests want.
type fixedRand struct{}

func (fixedRand) IntN(int) int { return 0 }

func (fixedRand) Float64() float64 { return 0 }

func (fixedRand) Bernoulli(p float64) bool { return p > 0 }

func (fixedRand) Shuffle(int, func(i, j int)) {}

func (f fixedRand) Clone() Rand { return f }

// newTestBrain builds a brain with the given config and the deterministic
// first-choice random source.
func newTestBrain(t *testing.T, cfg Config) *Brain {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return New(WithConfig(cfg), WithRand(fixedRand{}))
}

// catSatConfig is the configuration used by the single-line end-to-end
// tests: states of length 1 and 2, generation context of length 1 only.
func catSatConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxIngestionStateSize = 2
	cfg.MinGenerationStateSize = 1
	cfg.MaxGenerationStateSize = 2
	return cfg
}

// findState returns the transition for an exact element sequence, or nil.
func findState(b *Brain, elems ...StateElement) *Transition {
	node, ok := b.states[stateKey(elems)]
	if !ok {
		return nil
	}
	return &node.tr
}

// neighborCount returns the recorded count for elem in a neighbor list, or 0.
func neighborCount(list []Neighbor, elem StateElement) int {
	for _, n := range list {
		if n.Element == elem {
			return n.Count
		}
	}
	return 0
}
