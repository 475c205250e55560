package cmd

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger returns a debug level logger writing to w when verbose is set,
// and a logger that discards everything otherwise.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.DebugLevel,
	})
}
