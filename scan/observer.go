package scan

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Observer is notified as units of work start and finish.
// Implementations must be safe for concurrent use by the workers.
type Observer interface {
	Start(total int)
	FileStarted(worker int, path string)
	FileDone(worker int, result Result)
	Finish()
}

// NopObserver ignores all notifications
type NopObserver struct{}

func (NopObserver) Start(int)               {}
func (NopObserver) FileStarted(int, string) {}
func (NopObserver) FileDone(int, Result)    {}
func (NopObserver) Finish()                 {}

// ProgressBar renders completed/total units as a terminal progress bar
type ProgressBar struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar observer writing to w
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{w: w}
}

func (p *ProgressBar) Start(total int) {
	if total == 0 {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("Probing"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("file"),
		progressbar.OptionFullWidth(),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprintln(p.w) }),
	)
}

func (p *ProgressBar) FileStarted(int, string) {}

func (p *ProgressBar) FileDone(_ int, result Result) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(fmt.Sprintf("Parsed %s...", truncate(filepath.Base(result.Path), 20)))
	_ = p.bar.Add(1)
}

func (p *ProgressBar) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

// LogObserver reports progress through the logger, for non-interactive output
type LogObserver struct {
	Log logrus.FieldLogger

	mu    sync.Mutex
	done  int
	total int
}

func (o *LogObserver) Start(total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.done, o.total = 0, total
}

func (o *LogObserver) FileStarted(worker int, path string) {
	o.Log.WithFields(logrus.Fields{"worker": worker + 1, "path": path}).Debug("Probing")
}

func (o *LogObserver) FileDone(_ int, result Result) {
	o.mu.Lock()
	o.done++
	done, total := o.done, o.total
	o.mu.Unlock()

	o.Log.WithField("path", result.Path).Infof("Parsed [%d/%d] %s", done, total, filepath.Base(result.Path))
}

func (o *LogObserver) Finish() {}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
