// Package writer implements the scenario report output.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/memcalc/internal/options"
	"github.com/retroenv/memcalc/internal/scenario"
	"github.com/retroenv/memcalc/internal/verification"
)

const wordsPerLine = 8

// TableWriter writes a recorded signal trace.
type TableWriter interface {
	WriteTable(w io.Writer) error
}

// Report is the outcome of a scenario run.
type Report struct {
	Script   *scenario.Script
	Geometry options.Geometry
	Cycles   uint64
	Results  []verification.Result
	Cells    []uint64    // memory content after the last step
	Trace    TableWriter // optional
}

// Writer writes scenario reports.
type Writer struct {
	writer io.Writer
}

// New creates a new writer.
func New(writer io.Writer) *Writer {
	return &Writer{
		writer: writer,
	}
}

// Write outputs the header, all read back values, the final memory content
// and the trace if one was recorded.
func (w Writer) Write(report *Report) error {
	if err := w.WriteHeader(report); err != nil {
		return err
	}
	if err := w.WriteResults(report.Results, report.Geometry.Width); err != nil {
		return err
	}
	if err := w.WriteCells(report.Cells, report.Geometry.Width); err != nil {
		return err
	}
	if report.Trace == nil {
		return nil
	}

	if _, err := fmt.Fprintln(w.writer, "\n; trace"); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	if err := report.Trace.WriteTable(w.writer); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// WriteHeader writes the script name, the unit geometry and the simulated
// cycles as comments to the output.
func (w Writer) WriteHeader(report *Report) error {
	g := report.Geometry
	if _, err := fmt.Fprintf(w.writer, "; scenario: %s\n", report.Script.Name); err != nil {
		return fmt.Errorf("writing scenario name: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; unit: %s, %d bit words, %d words, %d bit address\n",
		g.Unit, g.Width, g.Depth, g.AddressBits); err != nil {
		return fmt.Errorf("writing unit: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; cycles: %d\n\n", report.Cycles); err != nil {
		return fmt.Errorf("writing cycles: %w", err)
	}
	return nil
}

// WriteResults writes one line per read back value with the result of its
// expectation check.
func (w Writer) WriteResults(results []verification.Result, width uint) error {
	if len(results) == 0 {
		return nil
	}

	digits := hexDigits(width)
	for _, result := range results {
		line := fmt.Sprintf("%-24s = $%0*X", result.Step.String(), digits, result.Got)

		var comment string
		switch {
		case result.Mismatch():
			comment = fmt.Sprintf("cycle %d, MISMATCH expected $%0*X", result.Cycle, digits, result.Step.Expected)
		case result.Step.HasExpected:
			comment = fmt.Sprintf("cycle %d, ok", result.Cycle)
		default:
			comment = fmt.Sprintf("cycle %d", result.Cycle)
		}

		if _, err := fmt.Fprintf(w.writer, "%-40s ; %s\n", line, comment); err != nil {
			return fmt.Errorf("writing result line: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// WriteCells writes the memory content with wordsPerLine words per line.
func (w Writer) WriteCells(cells []uint64, width uint) error {
	if _, err := fmt.Fprintln(w.writer, "; memory"); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}

	digits := hexDigits(width)
	for i := 0; i < len(cells); i += wordsPerLine {
		toWrite := min(len(cells)-i, wordsPerLine)

		buf := &strings.Builder{}
		fmt.Fprintf(buf, "%04X:", i)
		for _, cell := range cells[i : i+toWrite] {
			fmt.Fprintf(buf, " %0*X", digits, cell)
		}

		if _, err := fmt.Fprintln(w.writer, buf.String()); err != nil {
			return fmt.Errorf("writing memory line: %w", err)
		}
	}
	return nil
}

func hexDigits(width uint) int {
	return max(int(width+3)/4, 1)
}
