package catalog

import (
	"fmt"
	"sort"
)

// Mode selects how a scan is combined with an existing catalogue
type Mode string

const (
	// ModeAppend keeps existing records, updating those that were rescanned
	ModeAppend Mode = "a"
	// ModeOverwrite discards existing records
	ModeOverwrite Mode = "w"
)

// ParseMode accepts the short forms "a"/"w" and the long forms "append"/"overwrite"
func ParseMode(s string) (Mode, error) {
	switch s {
	case "a", "append", "update":
		return ModeAppend, nil
	case "w", "overwrite":
		return ModeOverwrite, nil
	}
	return "", fmt.Errorf("unknown write mode %q", s)
}

func (m Mode) String() string {
	if m == ModeOverwrite {
		return "overwrite"
	}
	return "append"
}

// MergeStats counts what a merge did to the catalogue
type MergeStats struct {
	Added   int
	Updated int
	Kept    int
}

// Merge combines freshly scanned records with the existing catalogue.
//
// In append mode existing records keep their order, a scanned record replaces the
// existing one with the same path, and records for new paths are appended sorted
// by path. In overwrite mode only the scanned records remain, sorted by path.
// Within scanned the last record for a path wins. The result holds each path once.
func Merge(existing, scanned []Record, mode Mode) ([]Record, MergeStats) {
	var stats MergeStats

	if mode == ModeOverwrite {
		existing = nil
	}

	merged := make([]Record, 0, len(existing)+len(scanned))
	index := make(map[string]int, len(existing))
	for _, rec := range existing {
		if i, ok := index[rec.Path]; ok {
			merged[i] = rec
			continue
		}
		index[rec.Path] = len(merged)
		merged = append(merged, rec)
	}

	updated := make(map[string]bool)
	added := make(map[string]Record)
	for _, rec := range scanned {
		if rec.Path == "" {
			continue
		}
		if i, ok := index[rec.Path]; ok {
			merged[i] = rec
			updated[rec.Path] = true
			continue
		}
		added[rec.Path] = rec
	}

	paths := make([]string, 0, len(added))
	for path := range added {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		merged = append(merged, added[path])
	}

	stats.Added = len(added)
	stats.Updated = len(updated)
	stats.Kept = len(index) - len(updated)
	return merged, stats
}
