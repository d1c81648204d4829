// Package signal implements the register bank of the simulated design.
//
// Every signal has a current value that is visible during a clock cycle and a
// pending next value that becomes current when the bank commits at the clock
// edge. All logic computes its next values from the current snapshot, so the
// order in which modules are evaluated does not matter for reads.
package signal

import "fmt"

// MaxWidth is the widest signal the bank supports.
const MaxWidth = 64

// Signal is a named, fixed width unsigned register.
type Signal struct {
	bank  *Bank
	name  string
	width uint
	mask  uint64

	value   uint64
	next    uint64
	pending bool
}

// Name returns the name of the signal.
func (s *Signal) Name() string {
	return s.name
}

// Width returns the width of the signal in bits.
func (s *Signal) Width() uint {
	return s.width
}

// Mask returns the bit mask covering the width of the signal.
func (s *Signal) Mask() uint64 {
	return s.mask
}

// Get returns the current value.
func (s *Signal) Get() uint64 {
	return s.value
}

// Bool returns whether the current value is not zero.
func (s *Signal) Bool() bool {
	return s.value != 0
}

// Set latches the value that becomes current at the next commit.
// The value is truncated to the width of the signal, the last Set before a
// commit wins.
func (s *Signal) Set(value uint64) {
	s.next = value & s.mask
	if !s.pending {
		s.pending = true
		s.bank.pending = append(s.bank.pending, s)
	}
}

// SetBool latches 1 for true and 0 for false.
func (s *Signal) SetBool(b bool) {
	if b {
		s.Set(1)
		return
	}
	s.Set(0)
}

// Next returns the value that the signal will have after the next commit.
func (s *Signal) Next() uint64 {
	if s.pending {
		return s.next
	}
	return s.value
}

func (s *Signal) String() string {
	return fmt.Sprintf("%s=%d", s.name, s.value)
}

func (s *Signal) commit() bool {
	s.pending = false
	if s.value == s.next {
		return false
	}
	s.value = s.next
	return true
}

func mask(width uint) uint64 {
	if width >= MaxWidth {
		return ^uint64(0)
	}
	return 1<<width - 1
}
