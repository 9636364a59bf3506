package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/videocatalog/scan"
)

// File log entry for the processed files list
type FileLogEntry struct {
	Path    string
	Details string
	Warning string
	Error   string
}

func (f FileLogEntry) FilterValue() string { return f.Path }
func (f FileLogEntry) Title() string       { return filepath.Base(f.Path) }
func (f FileLogEntry) Description() string {
	if f.Error != "" {
		return fmt.Sprintf("❌ %s", f.Error)
	}
	if f.Warning != "" {
		return fmt.Sprintf("⚠️  %s", f.Warning)
	}
	return fmt.Sprintf("✓ %s", f.Details)
}

func newFileLogEntry(res scan.Result) FileLogEntry {
	entry := FileLogEntry{Path: res.Path}
	switch {
	case res.Err != nil:
		entry.Error = res.Err.Error()
	case res.ProbeErr != nil:
		entry.Warning = "no metadata: " + res.ProbeErr.Error()
	default:
		rec := res.Record
		entry.Details = strings.Join([]string{rec.Duration, rec.Resolution, rec.Size}, "  ")
	}
	return entry
}

// Worker state tracking
type WorkerState struct {
	ID          int
	CurrentFile string
	Status      string // "idle", "probing", "done"
}

// TUIModel shows overall scan progress, what each worker is probing and the
// files processed so far.
type TUIModel struct {
	// Application state
	totalFiles     int
	processedFiles int
	failedProbes   int
	workers        []*WorkerState
	fileEntries    []FileLogEntry

	// UI components
	overallProgress progress.Model
	fileList        list.Model

	// Layout
	width  int
	height int

	// Control state
	finished bool
	quitting bool
	cancel   func()

	// Version for display
	Version string
}

// NewTUIModel creates a new TUI model. cancel is called when the user quits,
// it should stop the scan from dispatching more files.
func NewTUIModel(numWorkers int, version string, cancel func()) TUIModel {
	workers := make([]*WorkerState, numWorkers)
	for i := range workers {
		workers[i] = &WorkerState{ID: i, Status: "idle"}
	}

	fileList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "Processed Files"
	fileList.SetShowHelp(false)

	if cancel == nil {
		cancel = func() {}
	}

	return TUIModel{
		workers:         workers,
		overallProgress: progress.New(progress.WithDefaultGradient()),
		fileList:        fileList,
		cancel:          cancel,
		Version:         version,
	}
}

// Init implements tea.Model
func (m TUIModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.overallProgress.Width = max(msg.Width-30, 10)
		m.fileList.SetSize(msg.Width-4, msg.Height/2)

	case ScanStartedMsg:
		m.totalFiles = msg.Total

	case WorkerStartedMsg:
		if worker := m.worker(msg.WorkerID); worker != nil {
			worker.CurrentFile = msg.Filename
			worker.Status = "probing"
		}

	case WorkerCompletedMsg:
		if worker := m.worker(msg.WorkerID); worker != nil {
			worker.Status = "done"
			worker.CurrentFile = ""
		}

		m.processedFiles++
		if msg.Result.ProbeErr != nil {
			m.failedProbes++
		}

		// newest first
		m.fileEntries = append([]FileLogEntry{newFileLogEntry(msg.Result)}, m.fileEntries...)
		items := make([]list.Item, len(m.fileEntries))
		for i, entry := range m.fileEntries {
			items[i] = entry
		}
		m.fileList.SetItems(items)

	case ScanFinishedMsg:
		m.finished = true
		for _, worker := range m.workers {
			worker.Status = "idle"
			worker.CurrentFile = ""
		}
	}

	return m, nil
}

func (m TUIModel) worker(id int) *WorkerState {
	if id < 0 || id >= len(m.workers) {
		return nil
	}
	return m.workers[id]
}

// View implements tea.Model
func (m TUIModel) View() string {
	if m.quitting {
		return ProcessingStyle.Render("Stopping, waiting for running probes to finish...") + "\n"
	}

	// Header
	header := HeaderStyle.Render(fmt.Sprintf("videocatalog %s", m.Version))

	// Overall progress
	overallPercent := 0.0
	if m.totalFiles > 0 {
		overallPercent = float64(m.processedFiles) / float64(m.totalFiles)
	}
	overallView := fmt.Sprintf("Overall Progress: %s (%d/%d)",
		m.overallProgress.ViewAs(overallPercent),
		m.processedFiles,
		m.totalFiles)
	if m.failedProbes > 0 {
		overallView += " " + ErrorStyle.Render(fmt.Sprintf("%d without metadata", m.failedProbes))
	}

	// Worker status
	workerViews := []string{"Worker Status:"}
	for _, worker := range m.workers {
		status := fmt.Sprintf("Worker %2d: ", worker.ID+1)
		if worker.Status == "probing" {
			status += ProcessingStyle.Render(filepath.Base(worker.CurrentFile))
		} else {
			status += InfoStyle.Render(worker.Status)
		}
		workerViews = append(workerViews, status)
	}

	controls := "Controls: [q] Stop scan"
	if m.finished {
		controls = SuccessStyle.Render("✅ Scan complete, saving catalogue...")
	}

	sections := []string{
		header,
		overallView,
		strings.Join(workerViews, "\n"),
		m.fileList.View(),
		controls,
	}

	return strings.Join(sections, "\n\n")
}
