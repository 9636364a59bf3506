package ui

import "github.com/lepinkainen/videocatalog/scan"

// TUI Message Types for worker communication
type ScanStartedMsg struct {
	Total int
}

type WorkerStartedMsg struct {
	WorkerID int
	Filename string
}

type WorkerCompletedMsg struct {
	WorkerID int
	Result   scan.Result
}

// ScanFinishedMsg is sent once every dispatched file has been processed
type ScanFinishedMsg struct{}
