// Package logging builds the hclog logger used for progress and diagnostics.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/term"
)

// Name is the logger name shown on every line.
const Name = "coralcolours"

// Options configures the logger.
type Options struct {
	Verbose bool      // enable debug output
	Quiet   bool      // only warnings and errors
	Output  io.Writer // defaults to os.Stderr
}

// Level returns the log level implied by the options. Quiet wins over Verbose.
func (o Options) Level() hclog.Level {
	switch {
	case o.Quiet:
		return hclog.Warn
	case o.Verbose:
		return hclog.Debug
	default:
		return hclog.Info
	}
}

// New creates a logger. Colour is only enabled when writing to a terminal.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	colour := hclog.ColorOff
	if isTerminal(out) {
		colour = hclog.AutoColor
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            Name,
		Output:          out,
		Level:           opts.Level(),
		Color:           colour,
		DisableTime:     !opts.Verbose,
		IncludeLocation: opts.Verbose,
	})
}
