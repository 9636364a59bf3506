package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isTerminal reports whether f is attached to an interactive terminal
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
