package brain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/natefinch/atomic"
)

// The on-disk blob is a JSON rendering of the transition store. The format
// is an implementation detail; the only contract is an exact round-trip.

type exportedElement struct {
	Kind string `json:"kind"`
	Word string `json:"word,omitempty"`
}

type exportedNeighbor struct {
	Element exportedElement `json:"element"`
	Count   int             `json:"count"`
}

type exportedState struct {
	Elements []exportedElement  `json:"elements"`
	Prev     []exportedNeighbor `json:"prev"`
	Next     []exportedNeighbor `json:"next"`
}

type exportedBrain struct {
	States []exportedState `json:"states"`
}

const (
	kindNameWord  = "word"
	kindNameStart = "start"
	kindNameEnd   = "end"
)

func exportElement(e StateElement) exportedElement {
	switch e.Kind {
	case KindStart:
		return exportedElement{Kind: kindNameStart}
	case KindEnd:
		return exportedElement{Kind: kindNameEnd}
	default:
		return exportedElement{Kind: kindNameWord, Word: e.Word}
	}
}

func importElement(e exportedElement) (StateElement, error) {
	switch e.Kind {
	case kindNameWord:
		return Word(e.Word), nil
	case kindNameStart:
		return Start, nil
	case kindNameEnd:
		return End, nil
	default:
		return StateElement{}, fmt.Errorf("unknown element kind %q", e.Kind)
	}
}

// Export serializes the transition store to w. States are written in sorted
// key order so identical stores always produce identical blobs.
func (b *Brain) Export(w io.Writer) error {
	keys := append([]string(nil), b.keys...)
	sort.Strings(keys)

	exported := exportedBrain{States: make([]exportedState, 0, len(keys))}
	for _, key := range keys {
		node := b.states[key]

		st := exportedState{
			Elements: make([]exportedElement, len(node.elems)),
			Prev:     make([]exportedNeighbor, len(node.tr.Prev)),
			Next:     make([]exportedNeighbor, len(node.tr.Next)),
		}
		for i, e := range node.elems {
			st.Elements[i] = exportElement(e)
		}
		for i, n := range node.tr.Prev {
			st.Prev[i] = exportedNeighbor{Element: exportElement(n.Element), Count: n.Count}
		}
		for i, n := range node.tr.Next {
			st.Next[i] = exportedNeighbor{Element: exportElement(n.Element), Count: n.Count}
		}
		exported.States = append(exported.States, st)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(exported); err != nil {
		return fmt.Errorf("failed to encode brain blob: %w", err)
	}

	b.logger.Info("Brain exported",
		slog.Int("states_exported", len(exported.States)),
	)
	return nil
}

// Import deserializes a blob produced by Export and replaces the live store
// with it. The current store is only discarded once the whole blob has
// decoded and validated cleanly, so a corrupt blob never leaves the brain
// half-loaded.
func (b *Brain) Import(r io.Reader) error {
	var imported exportedBrain
	if err := json.NewDecoder(r).Decode(&imported); err != nil {
		return fmt.Errorf("failed to decode brain blob: %w", err)
	}

	fresh := &Brain{
		states: make(map[string]*stateNode, len(imported.States)),
		byWord: make(map[string][]string),
	}

	for i, st := range imported.States {
		if len(st.Elements) == 0 {
			return fmt.Errorf("invalid brain blob: state %d has no elements", i)
		}

		elems := make([]StateElement, len(st.Elements))
		for j, ee := range st.Elements {
			elem, err := importElement(ee)
			if err != nil {
				return fmt.Errorf("invalid brain blob: state %d: %w", i, err)
			}
			elems[j] = elem
		}

		if _, dup := fresh.states[stateKey(elems)]; dup {
			return fmt.Errorf("invalid brain blob: duplicate state %d", i)
		}
		node := fresh.getOrCreate(elems)
		if len(st.Prev) > 0 {
			node.tr.Prev = make([]Neighbor, len(st.Prev))
		}
		if len(st.Next) > 0 {
			node.tr.Next = make([]Neighbor, len(st.Next))
		}
		for j, en := range st.Prev {
			elem, err := importElement(en.Element)
			if err != nil {
				return fmt.Errorf("invalid brain blob: state %d prev: %w", i, err)
			}
			if en.Count < 1 {
				return fmt.Errorf("invalid brain blob: state %d prev count %d", i, en.Count)
			}
			node.tr.Prev[j] = Neighbor{Element: elem, Count: en.Count}
		}
		for j, en := range st.Next {
			elem, err := importElement(en.Element)
			if err != nil {
				return fmt.Errorf("invalid brain blob: state %d next: %w", i, err)
			}
			if en.Count < 1 {
				return fmt.Errorf("invalid brain blob: state %d next count %d", i, en.Count)
			}
			node.tr.Next[j] = Neighbor{Element: elem, Count: en.Count}
		}
	}

	b.states = fresh.states
	b.keys = fresh.keys
	b.byWord = fresh.byWord

	b.logger.Info("Brain imported",
		slog.Int("states_imported", len(imported.States)),
	)
	return nil
}

// SaveFile exports the store to a file, written atomically.
func (b *Brain) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := b.Export(&buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write brain file: %w", err)
	}
	return nil
}

// LoadFile imports the store from a file produced by SaveFile, replacing
// the current store.
func (b *Brain) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open brain file: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	if err := b.Import(f); err != nil {
		return fmt.Errorf("failed to load brain from %q: %w", path, err)
	}
	return nil
}
