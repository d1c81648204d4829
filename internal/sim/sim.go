// Package sim implements the single clock scheduler of the simulated design.
package sim

import (
	"context"
	"fmt"

	"github.com/retroenv/memcalc/internal/signal"
)

// Module is a piece of clocked logic. Step computes the next values of the
// registers the module drives from the current values of the bank.
type Module interface {
	Step()
}

// Observer gets notified after every clock edge with the signals that
// changed on that edge.
type Observer interface {
	Observe(cycle uint64, changed []*signal.Signal)
}

type drive struct {
	sig   *signal.Signal
	value uint64
}

// Simulator advances all modules of a design with one global clock.
type Simulator struct {
	bank      *signal.Bank
	modules   []Module
	observers []Observer
	drives    []drive
	cycle     uint64
}

// New returns a simulator for the design whose registers live in bank.
func New(bank *signal.Bank) *Simulator {
	return &Simulator{
		bank: bank,
	}
}

// Add registers a module. Modules step in registration order, a module
// added later overrides the next value an earlier one latched for the same
// register.
func (s *Simulator) Add(modules ...Module) {
	s.modules = append(s.modules, modules...)
}

// AddObserver registers an observer.
func (s *Simulator) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Bank returns the register bank of the design.
func (s *Simulator) Bank() *signal.Bank {
	return s.bank
}

// Cycle returns the number of clock edges simulated so far.
func (s *Simulator) Cycle() uint64 {
	return s.cycle
}

// Drive sets a signal from outside the design. The value is applied on the
// next clock edge after all modules stepped, so it wins over any value the
// design itself latched for the signal on that edge.
func (s *Simulator) Drive(sig *signal.Signal, value uint64) {
	s.drives = append(s.drives, drive{sig: sig, value: value})
}

// DriveBool drives 1 for true and 0 for false.
func (s *Simulator) DriveBool(sig *signal.Signal, b bool) {
	var value uint64
	if b {
		value = 1
	}
	s.Drive(sig, value)
}

// Tick simulates one clock edge.
func (s *Simulator) Tick() {
	for _, m := range s.modules {
		m.Step()
	}
	for _, d := range s.drives {
		d.sig.Set(d.value)
	}
	s.drives = s.drives[:0]

	changed := s.bank.Commit()
	s.cycle++

	for _, o := range s.observers {
		o.Observe(s.cycle, changed)
	}
}

// Run simulates the given number of clock edges.
func (s *Simulator) Run(ctx context.Context, cycles int) error {
	for i := 0; i < cycles; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("simulating cycle %d: %w", s.cycle, err)
		}
		s.Tick()
	}
	return nil
}
