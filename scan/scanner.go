// Package scan walks a directory of videos, builds a catalogue record per file on a
// bounded worker pool and merges the results into the CSV catalogue.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/lepinkainen/videocatalog/catalog"
	"github.com/lepinkainen/videocatalog/utils"
	"github.com/lepinkainen/videocatalog/video"
	"github.com/sirupsen/logrus"
)

// DefaultWorkers is the size of the probe worker pool
const DefaultWorkers = 12

// Options describe one scan
type Options struct {
	Input   string
	Output  string
	Tag     string
	Mode    catalog.Mode
	Workers int
	Refresh bool // reprobe files that already have a complete record
}

// Summary reports what a scan did
type Summary struct {
	Found         int
	Skipped       int // already catalogued, not probed again
	Processed     int
	ProbeFailures int
	Excluded      int // could not be read, left out of the catalogue
	Unprocessed   int // not dispatched because the scan was interrupted
	Merge         catalog.MergeStats
	Total         int
	Saved         bool
	Interrupted   bool
	Elapsed       time.Duration
}

// Scanner runs scans
type Scanner struct {
	Prober   video.Prober
	Observer Observer
	Log      logrus.FieldLogger
}

// Run scans opts.Input and writes the merged catalogue to opts.Output.
//
// Cancelling ctx stops dispatching new files; probes already running finish and
// in append mode everything collected so far is still merged and saved. An
// interrupted overwrite leaves the catalogue untouched. Errors reading or writing
// the catalogue are returned, per-file errors are only logged and counted.
func (s *Scanner) Run(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()
	log := s.logger()
	summary := &Summary{}

	if opts.Mode == "" {
		opts.Mode = catalog.ModeAppend
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}

	files, err := video.FindVideoFiles(opts.Input, func(path string, err error) {
		log.WithField("path", path).WithError(err).Warn("Skipping unreadable entry")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find video files: %w", err)
	}
	summary.Found = len(files)
	log.Infof("Found %d video files in %s", len(files), opts.Input)

	var existing []catalog.Record
	if opts.Mode == catalog.ModeAppend {
		existing, err = catalog.Load(opts.Output, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing catalogue: %w", err)
		}
		if len(existing) > 0 {
			log.Infof("Loaded %d records from %s", len(existing), opts.Output)
		}
	}

	todo := files
	if opts.Mode == catalog.ModeAppend && !opts.Refresh {
		todo = pending(files, existing)
	}
	summary.Skipped = len(files) - len(todo)
	if summary.Skipped > 0 {
		log.Infof("Skipping %d files already in the catalogue", summary.Skipped)
	}

	if opts.Mode == catalog.ModeAppend && len(todo) == 0 {
		if _, err := os.Stat(opts.Output); err == nil {
			log.Info("All files already recorded, nothing to do")
			summary.Total = len(existing)
			summary.Merge.Kept = len(existing)
			summary.Elapsed = time.Since(start)
			return summary, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to check output: %w", err)
		}
	}

	if hint := utils.NetworkWorkerHint(opts.Input, opts.Workers); hint != "" {
		log.Warn(hint)
	}

	builder := &Builder{Prober: s.Prober, Tag: opts.Tag, Log: log}
	results := s.process(ctx, todo, opts.Workers, builder)

	scanned := make([]catalog.Record, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			summary.Excluded++
			continue
		}
		if res.ProbeErr != nil {
			summary.ProbeFailures++
		}
		scanned = append(scanned, res.Record)
	}
	summary.Processed = len(scanned)
	summary.Unprocessed = len(todo) - len(results)
	summary.Interrupted = ctx.Err() != nil && summary.Unprocessed > 0
	if summary.Interrupted {
		log.Warnf("Scan interrupted, %d files were not processed", summary.Unprocessed)
		// a partial overwrite would drop every record that was not rescanned
		if opts.Mode == catalog.ModeOverwrite {
			log.Warnf("Overwrite aborted, %s left unchanged", opts.Output)
			summary.Elapsed = time.Since(start)
			return summary, nil
		}
	}

	merged, stats := catalog.Merge(existing, scanned, opts.Mode)
	if err := catalog.Save(opts.Output, merged); err != nil {
		return nil, fmt.Errorf("failed to save catalogue: %w", err)
	}
	summary.Merge = stats
	summary.Total = len(merged)
	summary.Saved = true
	summary.Elapsed = time.Since(start)

	log.Infof("Wrote %d records to %s", len(merged), opts.Output)
	return summary, nil
}

// process runs builder over files on a pool of workers and collects the results.
// Files not yet dispatched when ctx is cancelled are left out.
func (s *Scanner) process(ctx context.Context, files []string, workers int, builder *Builder) []Result {
	obs := s.observer()
	obs.Start(len(files))
	defer obs.Finish()

	if len(files) == 0 {
		return nil
	}
	if workers > len(files) {
		workers = len(files)
	}

	// Probes outlive cancellation so that a running ffprobe is not killed half way.
	probeCtx := context.WithoutCancel(ctx)

	jobs := make(chan string)
	results := make(chan Result, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for path := range jobs {
				obs.FileStarted(workerID, path)
				res := buildSafely(probeCtx, builder, path)
				obs.FileDone(workerID, res)
				results <- res
			}
		}(i)
	}

dispatch:
	for _, path := range files {
		// checked first so a cancelled scan never races a ready worker
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- path:
		}
	}
	close(jobs)

	wg.Wait()
	close(results)

	collected := make([]Result, 0, len(files))
	for res := range results {
		collected = append(collected, res)
	}
	return collected
}

// buildSafely keeps a panicking unit from taking down the other workers
func buildSafely(ctx context.Context, builder *Builder, path string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			builder.Log.WithField("path", path).Errorf("Processing panicked: %v", r)
			res = Result{Path: path, Err: fmt.Errorf("processing panicked: %v", r)}
		}
	}()
	return builder.Build(ctx, path)
}

// pending drops files that already have a successfully probed record
func pending(files []string, existing []catalog.Record) []string {
	if len(existing) == 0 {
		return files
	}
	known := catalog.ByPath(existing)
	todo := make([]string, 0, len(files))
	for _, path := range files {
		if rec, ok := known[path]; ok && rec.Probed() {
			continue
		}
		todo = append(todo, path)
	}
	return todo
}

func (s *Scanner) observer() Observer {
	if s.Observer == nil {
		return NopObserver{}
	}
	return s.Observer
}

func (s *Scanner) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}
