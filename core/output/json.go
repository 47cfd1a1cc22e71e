package output

import (
	"encoding/json"
	"io"

	"plancost/core/pipeline"
	"plancost/internal/errors"
)

// JSONFormatter renders the result as indented JSON
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the result as JSON
func (f *JSONFormatter) Render(w io.Writer, result *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return errors.Internal("cannot encode result", err)
	}
	return nil
}
