package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Load reads the catalogue at path. A missing file is an empty catalogue.
//
// Columns are matched by header name. Rows without a path are dropped, and when a
// path repeats the later row replaces the earlier one in place. Any read or parse
// error is returned so that an unreadable catalogue is never overwritten.
func Load(path string, log logrus.FieldLogger) ([]Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	records, err := read(f, log.WithField("csv", path))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return records, nil
}

func read(r io.Reader, log logrus.FieldLogger) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cols, err := newColumnMap(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	index := make(map[string]int)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		rec := cols.record(row)
		if rec.Path == "" {
			line, _ := reader.FieldPos(0)
			log.WithField("line", line).Warn("Dropping catalog row without a path")
			continue
		}

		if i, ok := index[rec.Path]; ok {
			records[i] = rec
			continue
		}
		index[rec.Path] = len(records)
		records = append(records, rec)
	}

	return records, nil
}

// Save writes records to path with a header row, replacing the file atomically
func Save(path string, records []Record) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Headers); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(rec.Row()); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", path, err)
	}
	return nil
}

// ByPath indexes records by their path
func ByPath(records []Record) map[string]Record {
	set := make(map[string]Record, len(records))
	for _, rec := range records {
		set[rec.Path] = rec
	}
	return set
}
