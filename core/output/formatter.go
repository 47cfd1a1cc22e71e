// Package output renders pipeline results for humans and machines.
package output

import (
	"io"

	"plancost/core/pipeline"
	"plancost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *pipeline.Result) error
}

// New returns the formatter for a format name
func New(name string) (Formatter, error) {
	switch Format(name) {
	case FormatCLI, "":
		return &CLIFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, errors.Newf(errors.TypeConfig, "unknown output format: %s", name)
	}
}
