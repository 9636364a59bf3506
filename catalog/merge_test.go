package catalog

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"reflect"
	"testing"
)

func paths(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Path
	}
	return out
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"a", ModeAppend, false},
		{"append", ModeAppend, false},
		{"w", ModeOverwrite, false},
		{"overwrite", ModeOverwrite, false},
		{"x", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = (%q, %v)", tt.input, got, err)
		}
	}
}

func TestMerge_AppendKeepsUnscannedAndAddsNew(t *testing.T) {
	existing := []Record{sampleRecord("/a/b.mp4")}
	scanned := []Record{sampleRecord("/a/c.mp4")}

	merged, stats := Merge(existing, scanned, ModeAppend)

	if !reflect.DeepEqual(paths(merged), []string{"/a/b.mp4", "/a/c.mp4"}) {
		t.Errorf("Merged paths = %v", paths(merged))
	}
	if merged[0] != existing[0] {
		t.Errorf("Existing record was changed: %+v", merged[0])
	}
	if stats != (MergeStats{Added: 1, Updated: 0, Kept: 1}) {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestMerge_AppendUpdatesInPlace(t *testing.T) {
	existing := []Record{sampleRecord("/z.mp4"), sampleRecord("/a.mp4")}
	fresh := sampleRecord("/z.mp4")
	fresh.Duration = "00:00:10"

	merged, stats := Merge(existing, []Record{fresh, sampleRecord("/m.mp4")}, ModeAppend)

	if !reflect.DeepEqual(paths(merged), []string{"/z.mp4", "/a.mp4", "/m.mp4"}) {
		t.Errorf("Merged paths = %v", paths(merged))
	}
	if merged[0].Duration != "00:00:10" {
		t.Errorf("Expected updated record, got %+v", merged[0])
	}
	if stats != (MergeStats{Added: 1, Updated: 1, Kept: 1}) {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestMerge_OverwriteDiscardsExisting(t *testing.T) {
	existing := []Record{sampleRecord("/a/b.mp4"), sampleRecord("/a/c.mp4")}
	scanned := []Record{sampleRecord("/a/d.mp4"), sampleRecord("/a/c.mp4")}
	scanned[1].Comment = "fresh"

	merged, stats := Merge(existing, scanned, ModeOverwrite)

	if !reflect.DeepEqual(paths(merged), []string{"/a/c.mp4", "/a/d.mp4"}) {
		t.Errorf("Merged paths = %v", paths(merged))
	}
	if merged[0].Comment != "fresh" {
		t.Errorf("Expected scanned record, got %+v", merged[0])
	}
	if stats != (MergeStats{Added: 2}) {
		t.Errorf("Stats = %+v", stats)
	}

	merged, _ = Merge(existing, nil, ModeOverwrite)
	if len(merged) != 0 {
		t.Errorf("Expected empty result, got %v", paths(merged))
	}
}

func TestMerge_LastSeenWinsWithinBatch(t *testing.T) {
	first := sampleRecord("/a/b.mp4")
	first.Comment = "first"
	second := sampleRecord("/a/b.mp4")
	second.Comment = "second"

	for _, mode := range []Mode{ModeAppend, ModeOverwrite} {
		merged, _ := Merge(nil, []Record{first, second}, mode)
		if len(merged) != 1 || merged[0].Comment != "second" {
			t.Errorf("%s: expected only the last record, got %+v", mode, merged)
		}

		merged, _ = Merge([]Record{sampleRecord("/a/b.mp4")}, []Record{first, second}, mode)
		if len(merged) != 1 || merged[0].Comment != "second" {
			t.Errorf("%s: expected only the last record over existing, got %+v", mode, merged)
		}
	}
}

func TestMerge_OneRecordPerPath(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		var existing, scanned []Record
		nExisting, nScanned := rng.Intn(20), rng.Intn(20)
		for i := 0; i < nExisting; i++ {
			existing = append(existing, sampleRecord(fmt.Sprintf("/v/%d.mp4", rng.Intn(10))))
		}
		for i := 0; i < nScanned; i++ {
			scanned = append(scanned, sampleRecord(fmt.Sprintf("/v/%d.mp4", rng.Intn(10))))
		}

		for _, mode := range []Mode{ModeAppend, ModeOverwrite} {
			merged, stats := Merge(existing, scanned, mode)
			seen := make(map[string]bool)
			for _, r := range merged {
				if seen[r.Path] {
					t.Fatalf("round %d %s: duplicate path %s", round, mode, r.Path)
				}
				seen[r.Path] = true
			}
			if stats.Added+stats.Updated+stats.Kept != len(merged) {
				t.Fatalf("round %d %s: stats %+v do not add up to %d", round, mode, stats, len(merged))
			}
			for _, r := range scanned {
				if !seen[r.Path] {
					t.Fatalf("round %d %s: scanned path %s missing", round, mode, r.Path)
				}
			}
		}
	}
}

func TestMerge_AppendIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	scanned := []Record{sampleRecord("/v/2.mp4"), sampleRecord("/v/1.mp4")}

	var outputs []string
	for run := 0; run < 2; run++ {
		existing, err := Load(path, quietLogger())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		merged, _ := Merge(existing, scanned, ModeAppend)
		if err := Save(path, merged); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		data, err := readFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		outputs = append(outputs, data)
	}

	if outputs[0] != outputs[1] {
		t.Errorf("Second run changed the catalog:\n%s\n---\n%s", outputs[0], outputs[1])
	}
}
