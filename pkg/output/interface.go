package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders analysis reports in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json, yaml).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds the daily timeline and run metadata.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool

	// Color enables ANSI styling in the text format.
	Color bool
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{"text", "json", "yaml"}
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text", "":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "yaml", "yml":
		return NewYAMLFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (must be text, json, or yaml)", name)
	}
}
