// Package verification verifies that the values read back during a scenario
// match the expected values of the script.
package verification

import (
	"fmt"

	"github.com/retroenv/memcalc/internal/scenario"
	"github.com/retroenv/retrogolib/log"
)

// maxLoggedMismatches limits the number of mismatches that get logged.
const maxLoggedMismatches = 10

// Result is a value that a script step read back.
type Result struct {
	Step  scenario.Step
	Cycle uint64 // simulation cycle after the step finished
	Got   uint64
}

// Mismatch returns whether the step expected a different value.
func (r Result) Mismatch() bool {
	return r.Step.HasExpected && r.Step.Expected != r.Got
}

// VerifyResults checks all results against the expectations of their steps
// and logs the first mismatches.
func VerifyResults(logger *log.Logger, results []Result) error {
	var mismatches int
	for _, result := range results {
		if !result.Mismatch() {
			continue
		}

		mismatches++
		if mismatches <= maxLoggedMismatches {
			logger.Error("Value mismatch",
				log.String("step", result.Step.String()),
				log.Int("line", result.Step.Line),
				log.Hex("expected", result.Step.Expected),
				log.Hex("got", result.Got))
		}
	}
	if mismatches == 0 {
		return nil
	}
	return fmt.Errorf("%d value mismatches", mismatches)
}

// VerifyCells compares the memory content with the expected cells. Cells
// without an expectation are skipped.
func VerifyCells(logger *log.Logger, expected map[int]uint64, cells []uint64) error {
	var mismatches int
	for index, want := range expected {
		if index < 0 || index >= len(cells) {
			return fmt.Errorf("cell %d is outside of the memory of %d cells", index, len(cells))
		}
		if cells[index] == want {
			continue
		}

		mismatches++
		logger.Error("Cell mismatch",
			log.Int("cell", index),
			log.Hex("expected", want),
			log.Hex("got", cells[index]))
	}
	if mismatches == 0 {
		return nil
	}
	return fmt.Errorf("%d cell mismatches", mismatches)
}
