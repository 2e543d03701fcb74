package validation

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/confcheck/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes sweep results.
type Reporter struct {
	out    io.Writer
	format Format
	matrix bool
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithMatrix appends a context x type summary table to text reports.
func WithMatrix(enabled bool) ReporterOption {
	return func(r *Reporter) {
		r.matrix = enabled
	}
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		out:    out,
		format: format,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report writes the sweep to the output.
func (r *Reporter) Report(sweep *Sweep) error {
	if sweep == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(sweep)
	default:
		return r.reportText(sweep)
	}
}

func (r *Reporter) reportJSON(sweep *Sweep) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(sweep), "encoding JSON report")
}

func (r *Reporter) reportText(sweep *Sweep) error {
	for _, e := range sweep.Entries {
		if !e.Result.HasErrors() {
			fmt.Fprintln(r.out, color.GreenString("✓"), e.Context, e.Type)
			continue
		}

		fmt.Fprintf(r.out, "%s %s %s: %s\n",
			color.RedString("✗"), e.Context, e.Type,
			color.RedString("%d error(s)", e.Result.Len()))
		for _, err := range e.Result.Flattened() {
			fmt.Fprintf(r.out, "  %s -> %s\n", color.New(color.FgRed).Sprint(DisplayPath(err.Path)), err.Message)
		}
	}
	fmt.Fprintln(r.out)

	if r.matrix {
		fmt.Fprintln(r.out, Matrix(sweep))
		fmt.Fprintln(r.out)
	}

	if !sweep.HasErrors() {
		fmt.Fprintln(r.out, color.GreenString("✓ Validation passed: %d pair(s)", sweep.Len()))
		return nil
	}
	fmt.Fprintf(r.out, "Validation failed: %s in %d of %d pair(s)\n",
		color.RedString("%d error(s)", sweep.ErrorCount()), len(sweep.Failed()), sweep.Len())
	return nil
}

// WriteLines writes one "<path> -> <message>" line per violation, without color.
func WriteLines(w io.Writer, result *Result) error {
	for _, e := range result.Flattened() {
		if _, err := fmt.Fprintln(w, e.Error()); err != nil {
			return errors.Wrap(err, "writing report line")
		}
	}
	return nil
}
