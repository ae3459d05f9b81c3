package ui

import (
	"io"
	"os"

	"github.com/pterm/pterm"
)

// NewLogger returns the structured logger used by every command. Logs go to
// stderr so json and csv output on stdout stay machine readable.
func NewLogger(verbose bool) *pterm.Logger {
	return newLogger(os.Stderr, verbose)
}

func newLogger(w io.Writer, verbose bool) *pterm.Logger {
	level := pterm.LogLevelInfo
	if verbose {
		level = pterm.LogLevelDebug
	}
	return pterm.DefaultLogger.WithLevel(level).WithWriter(w)
}
