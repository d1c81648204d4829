// Package scenario defines scripts of caller side requests that are replayed
// against a storage unit or a calculator.
//
// A script is plain text with one step per line, '#' starts a comment:
//
//	wait <cycles>
//	store <address> <value>
//	recall <address> [expected]
//	calculate <divide_by>
//	average <a> <b> <c> [expected]
//
// Numbers use Go integer literal syntax, for example 42, 0x5665 or 0b101.
package scenario

import (
	"fmt"
	"strings"
)

// Op is the operation of a step.
type Op string

// Supported operations.
const (
	Wait      Op = "wait"
	Store     Op = "store"
	Recall    Op = "recall"
	Calculate Op = "calculate"
	Average   Op = "average"
)

// Step is a single caller request.
type Step struct {
	Op       Op
	Line     int      // line in the source script, 0 for generated steps
	Cycles   int      // wait
	Address  uint64   // store, recall
	Value    uint64   // store value, calculate divisor
	Operands []uint64 // average

	Expected    uint64 // recall, average
	HasExpected bool
}

func (s Step) String() string {
	var b strings.Builder
	b.WriteString(string(s.Op))

	switch s.Op {
	case Wait:
		fmt.Fprintf(&b, " %d", s.Cycles)
	case Store:
		fmt.Fprintf(&b, " %d %d", s.Address, s.Value)
	case Recall:
		fmt.Fprintf(&b, " %d", s.Address)
	case Calculate:
		fmt.Fprintf(&b, " %d", s.Value)
	case Average:
		for _, operand := range s.Operands {
			fmt.Fprintf(&b, " %d", operand)
		}
	}
	if s.HasExpected {
		fmt.Fprintf(&b, " %d", s.Expected)
	}
	return b.String()
}

// Script is an ordered list of steps.
type Script struct {
	Name  string
	Steps []Step
}

// UsesCalculator returns whether any step needs a calculator.
func (s *Script) UsesCalculator() bool {
	for _, step := range s.Steps {
		if step.Op == Calculate || step.Op == Average {
			return true
		}
	}
	return false
}

// Expectations returns the number of steps that check a result.
func (s *Script) Expectations() int {
	n := 0
	for _, step := range s.Steps {
		if step.HasExpected {
			n++
		}
	}
	return n
}
