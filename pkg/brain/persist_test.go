package brain

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// transitionCounts flattens a neighbor list into an element -> count map so
// comparisons ignore first-observed ordering.
func transitionCounts(list []Neighbor) map[StateElement]int {
	m := make(map[StateElement]int, len(list))
	for _, n := range list {
		m[n.Element] = n.Count
	}
	return m
}

func assertSameStore(t *testing.T, want, got *Brain) {
	t.Helper()

	if want.Len() != got.Len() {
		t.Fatalf("store size mismatch: want %d states, got %d", want.Len(), got.Len())
	}
	for key, node := range want.states {
		other, ok := got.states[key]
		if !ok {
			t.Errorf("state %q missing after round trip", key)
			continue
		}
		for elem, count := range transitionCounts(node.tr.Prev) {
			if transitionCounts(other.tr.Prev)[elem] != count {
				t.Errorf("state %q: prev count mismatch for %v", key, elem)
			}
		}
		if len(node.tr.Prev) != len(other.tr.Prev) || len(node.tr.Next) != len(other.tr.Next) {
			t.Errorf("state %q: neighbor list lengths changed", key)
		}
		for elem, count := range transitionCounts(node.tr.Next) {
			if transitionCounts(other.tr.Next)[elem] != count {
				t.Errorf("state %q: next count mismatch for %v", key, elem)
			}
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIngestionStateSize = 3

	b := newTestBrain(t, cfg)
	for _, line := range []string{
		"the cat sat",
		"the cat sat",
		"one fish two fish red fish blue fish",
		"",
	} {
		b.Ingest(line)
	}

	var buf bytes.Buffer
	if err := b.Export(&buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	restored := newTestBrain(t, cfg)
	restored.Ingest("stale data that the import must replace")
	if err := restored.Import(&buf); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	assertSameStore(t, b, restored)
	if findState(restored, Word("stale")) != nil {
		t.Error("import merged into the old store instead of replacing it")
	}
}

func TestExportImportEmptyStore(t *testing.T) {
	b := newTestBrain(t, DefaultConfig())

	var buf bytes.Buffer
	if err := b.Export(&buf); err != nil {
		t.Fatalf("Export of empty store failed: %v", err)
	}

	restored := newTestBrain(t, DefaultConfig())
	if err := restored.Import(&buf); err != nil {
		t.Fatalf("Import of empty store failed: %v", err)
	}
	if restored.Len() != 0 {
		t.Errorf("expected empty store after round trip, got %d states", restored.Len())
	}
}

func TestImportRejectsCorruptBlobs(t *testing.T) {
	testCases := []struct {
		name string
		blob string
	}{
		{name: "Not JSON", blob: "not a blob"},
		{name: "Truncated", blob: `{"states": [{"elements": [{"kind": "word`},
		{name: "Unknown kind", blob: `{"states": [{"elements": [{"kind": "emoji"}], "prev": [], "next": []}]}`},
		{name: "Empty state", blob: `{"states": [{"elements": [], "prev": [], "next": []}]}`},
		{name: "Zero count", blob: `{"states": [{"elements": [{"kind": "word", "word": "a"}], "prev": [{"element": {"kind": "start"}, "count": 0}], "next": []}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBrain(t, DefaultConfig())
			b.Ingest("the cat sat")
			before := b.Len()

			if err := b.Import(strings.NewReader(tc.blob)); err == nil {
				t.Fatal("expected an error importing a corrupt blob")
			}
			if b.Len() != before {
				t.Error("failed import modified the live store")
			}
		})
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brain.json")

	cfg := catSatConfig()
	b := newTestBrain(t, cfg)
	b.Ingest("the cat sat")

	if err := b.SaveFile(path); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	restored := newTestBrain(t, cfg)
	if err := restored.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	assertSameStore(t, b, restored)

	if err := restored.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error loading a missing brain file")
	}
}

func TestExportGolden(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIngestionStateSize = 1

	b := newTestBrain(t, cfg)
	b.Ingest("the cat sat")

	var buf bytes.Buffer
	if err := b.Export(&buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "export_cat_sat", buf.Bytes())
}
