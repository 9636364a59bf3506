package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/videocatalog/scan"
)

// Observer forwards scan progress to a running bubbletea program.
// Sends after the program has exited are dropped.
type Observer struct {
	send func(tea.Msg)
}

// NewObserver creates an observer for p
func NewObserver(p *tea.Program) *Observer {
	return &Observer{send: p.Send}
}

func (o *Observer) Start(total int) {
	o.send(ScanStartedMsg{Total: total})
}

func (o *Observer) FileStarted(worker int, path string) {
	o.send(WorkerStartedMsg{WorkerID: worker, Filename: path})
}

func (o *Observer) FileDone(worker int, result scan.Result) {
	o.send(WorkerCompletedMsg{WorkerID: worker, Result: result})
}

func (o *Observer) Finish() {
	o.send(ScanFinishedMsg{})
}

var _ scan.Observer = (*Observer)(nil)
