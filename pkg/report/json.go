package report

import (
	"encoding/json"
	"io"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// Formatter renders a report to a writer.
type Formatter interface {
	Format(w io.Writer, report *interfaces.Report) error
}

// NewFormatter returns the formatter for the given output format name.
// Unknown names fall back to the terminal formatter.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	case "markdown", "md":
		return NewMarkdownFormatter()
	default:
		return NewTerminalFormatter()
	}
}

// JSONFormatter writes a report as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON report formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the report as indented JSON to the given writer.
func (f *JSONFormatter) Format(w io.Writer, report *interfaces.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
