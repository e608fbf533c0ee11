package brain

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// stateNode pairs a state's element sequence with its transition record. The
// elements are kept alongside the encoded key so seeding and stats can read
// them back without decoding.
type stateNode struct {
	elems []StateElement
	tr    Transition
}

// Brain is the main entry point of the library. It owns the transition
// store, the configuration and the random source.
//
// The store maps encoded state keys to transitions. Two side structures are
// maintained for generation: keys, the insertion-ordered list of all state
// keys, and byWord, an inverted index from each word to the states that
// contain it. Both exist so uniform random selections stay O(1) and, unlike
// Go map iteration, deterministic under a fixed seed.
type Brain struct {
	// Config is exposed for runtime editing between calls.
	Config Config

	states map[string]*stateNode
	keys   []string
	byWord map[string][]string

	rng    Rand
	logger *slog.Logger
}

// Option configures a Brain during construction.
type Option func(*Brain)

// WithConfig sets the initial configuration.
func WithConfig(cfg Config) Option {
	return func(b *Brain) { b.Config = cfg }
}

// WithRand sets the random source. Useful for deterministic tests.
func WithRand(rng Rand) Option {
	return func(b *Brain) { b.rng = rng }
}

// WithSeed replaces the entropy-seeded default source with a deterministic
// one built from seed.
func WithSeed(seed uint64) Option {
	return func(b *Brain) { b.rng = NewRand(seed) }
}

// WithLogger sets the logger. By default all logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Brain) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates an empty brain with the default configuration, an
// entropy-seeded random source and a discarded logger, then applies the
// given options.
func New(opts ...Option) *Brain {
	b := &Brain{
		Config: DefaultConfig(),
		states: make(map[string]*stateNode),
		byWord: make(map[string][]string),
		rng:    NewEntropyRand(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetLogger replaces the brain's logger. A nil logger is ignored.
func (b *Brain) SetLogger(logger *slog.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// Len returns the number of distinct states in the store.
func (b *Brain) Len() int { return len(b.states) }

// Ingest learns from a single raw text line. For every state length L from 1
// to MaxIngestionStateSize it slides a window of width L+2 across the
// tokenized line; the middle L elements form a state, and the window edges
// are recorded as its backward and forward neighbors. The same line
// therefore produces overlapping states of every configured length, which is
// what makes length fallback possible at generation time.
func (b *Brain) Ingest(line string) {
	elems := Tokenize(line)

	for size := 1; size <= b.Config.MaxIngestionStateSize; size++ {
		for i := 0; i+size+2 <= len(elems); i++ {
			window := elems[i : i+size+2]
			node := b.getOrCreate(window[1 : size+1])
			node.tr.observe(backward, window[0])
			node.tr.observe(forward, window[size+1])
		}
	}
}

// getOrCreate looks up the state for the given element sequence, inserting
// an empty one (and registering it in the key list and word index) on first
// sight.
func (b *Brain) getOrCreate(elems []StateElement) *stateNode {
	key := stateKey(elems)
	if node, ok := b.states[key]; ok {
		return node
	}

	node := &stateNode{elems: append([]StateElement(nil), elems...)}
	b.states[key] = node
	b.keys = append(b.keys, key)

	seen := make(map[string]struct{}, len(elems))
	for _, e := range elems {
		if !e.IsWord() {
			continue
		}
		if _, dup := seen[e.Word]; dup {
			continue
		}
		seen[e.Word] = struct{}{}
		b.byWord[e.Word] = append(b.byWord[e.Word], key)
	}
	return node
}

// Train ingests a whole corpus, one line per sentence, from r.
func (b *Brain) Train(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines int64
	for scanner.Scan() {
		b.Ingest(scanner.Text())
		lines++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read training data: %w", err)
	}

	b.logger.Info("Training completed",
		slog.Int64("lines_ingested", lines),
		slog.Int("total_states", len(b.states)),
	)
	return nil
}

// TrainFile is a convenience wrapper around Train for an on-disk dataset.
func (b *Brain) TrainFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	if err := b.Train(f); err != nil {
		return fmt.Errorf("failed to train from %q: %w", path, err)
	}
	return nil
}
