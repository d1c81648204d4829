package writer

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/retroenv/memcalc/internal/options"
	"github.com/retroenv/memcalc/internal/scenario"
	"github.com/retroenv/memcalc/internal/verification"
	"github.com/retroenv/retrogolib/assert"
)

type fakeTrace struct{}

func (fakeTrace) WriteTable(w io.Writer) error {
	_, err := io.WriteString(w, "   cycle stored\n")
	return err
}

func TestWrite(t *testing.T) {
	report := &Report{
		Script:   &scenario.Script{Name: "average"},
		Geometry: options.NewGeometry(options.UnitCalculator, 0, 0),
		Cycles:   123,
		Results: []verification.Result{
			{Step: scenario.Step{Op: scenario.Recall, Address: 4, Expected: 8, HasExpected: true}, Cycle: 50, Got: 8},
			{Step: scenario.Step{Op: scenario.Recall, Address: 1, Expected: 5, HasExpected: true}, Cycle: 60, Got: 6},
			{Step: scenario.Step{Op: scenario.Recall, Address: 2}, Cycle: 70, Got: 7},
		},
		Cells: []uint64{0, 5, 7, 12, 8},
		Trace: fakeTrace{},
	}

	var buf bytes.Buffer
	assert.NoError(t, New(&buf).Write(report))
	output := buf.String()

	assert.True(t, strings.HasPrefix(output, "; scenario: average\n"))
	assert.Contains(t, output, "; unit: calculator, 16 bit words, 5 words, 16 bit address")
	assert.Contains(t, output, "; cycles: 123")
	assert.Contains(t, output, "recall 4 8")
	assert.Contains(t, output, "$0008")
	assert.Contains(t, output, "cycle 50, ok")
	assert.Contains(t, output, "cycle 60, MISMATCH expected $0005")
	assert.Contains(t, output, "0000: 0000 0005 0007 000C 0008\n")
	assert.Contains(t, output, "; trace\n   cycle stored\n")
}

func TestWriteCells(t *testing.T) {
	cells := make([]uint64, 10)
	cells[9] = 0xff

	var buf bytes.Buffer
	assert.NoError(t, New(&buf).WriteCells(cells, 8))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "0000: 00 00 00 00 00 00 00 00", lines[1])
	assert.Equal(t, "0008: 00 FF", lines[2])
}
