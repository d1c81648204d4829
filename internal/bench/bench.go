// Package bench drives the caller side of the store/recall and calculator
// signal contract. Every wait is a bounded poll, a request that is not
// acknowledged in time is reported as a timeout since the design itself
// has no way to detect a stuck request.
package bench

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/memcalc/internal/calculator"
	"github.com/retroenv/memcalc/internal/sim"
	"github.com/retroenv/memcalc/internal/storage"
	"github.com/retroenv/retrogolib/log"
)

// OperandCount is the number of operands an average is calculated of. The
// calculator scans the addresses up to the result address, the operands
// live at the addresses 1 to OperandCount and address 0 has to be zero.
const OperandCount = 3

var (
	// ErrTimeout is returned when a polled signal did not reach the expected
	// state within the cycle limit.
	ErrTimeout = errors.New("timeout")
	// ErrNoCalculator is returned for calculator requests on a storage unit.
	ErrNoCalculator = errors.New("unit has no calculator")
	// ErrAddressRange is returned for addresses outside of the memory.
	ErrAddressRange = errors.New("address out of range")
	// ErrValueRange is returned for values wider than the data width.
	ErrValueRange = errors.New("value out of range")
)

// Limits are the maximum number of cycles to poll for a condition.
type Limits struct {
	Available int // storage or calculator becoming available
	Store     int // stored acknowledge
	Recall    int // recalled acknowledge
	Calculate int // calculated flag
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		Available: 20,
		Store:     10,
		Recall:    10,
		Calculate: 100,
	}
}

// Options control how the bench drives a unit.
type Options struct {
	Limits Limits

	// AllowAliasing accepts addresses past the memory depth as long as they
	// fit the address signal. The memory decodes them to an aliased cell.
	AllowAliasing bool
}

// DefaultOptions returns the default limits with strict address checking.
func DefaultOptions() Options {
	return Options{Limits: DefaultLimits()}
}

// Bench drives a storage unit or a calculator.
type Bench struct {
	logger *log.Logger
	sim    *sim.Simulator
	unit   *storage.Storage
	calc   *calculator.Calculator

	limits        Limits
	allowAliasing bool
}

// New returns a bench for a storage unit that is already added to the
// simulator.
func New(logger *log.Logger, simulator *sim.Simulator, unit *storage.Storage, opts Options) *Bench {
	return &Bench{
		logger:        logger,
		sim:           simulator,
		unit:          unit,
		limits:        opts.Limits,
		allowAliasing: opts.AllowAliasing,
	}
}

// NewCalculator returns a bench for a calculator that is already added to
// the simulator.
func NewCalculator(logger *log.Logger, simulator *sim.Simulator, calc *calculator.Calculator, opts Options) *Bench {
	b := New(logger, simulator, calc.Storage, opts)
	b.calc = calc
	return b
}

// Unit returns the driven storage unit.
func (b *Bench) Unit() *storage.Storage {
	return b.unit
}

// Simulator returns the simulator the bench drives.
func (b *Bench) Simulator() *sim.Simulator {
	return b.sim
}

// Calculator returns the driven calculator or nil for a storage unit.
func (b *Bench) Calculator() *calculator.Calculator {
	return b.calc
}

// Cycle returns the current simulation cycle.
func (b *Bench) Cycle() uint64 {
	return b.sim.Cycle()
}

// Wait lets the given number of cycles pass.
func (b *Bench) Wait(ctx context.Context, cycles int) error {
	b.logger.Debug("Waiting", log.Int("cycles", cycles))
	if err := b.sim.Run(ctx, cycles); err != nil {
		return fmt.Errorf("waiting: %w", err)
	}
	return nil
}

// WaitStorageAvailable waits until no store or recall is requested or
// acknowledged.
func (b *Bench) WaitStorageAvailable(ctx context.Context) error {
	return b.poll(ctx, "storage to become available", b.limits.Available, b.unit.Available)
}

// WaitCalculatorAvailable waits until no calculation is requested and the
// calculated flag of the previous calculation is cleared.
func (b *Bench) WaitCalculatorAvailable(ctx context.Context) error {
	if b.calc == nil {
		return ErrNoCalculator
	}
	return b.poll(ctx, "calculator to become available", b.limits.Available, b.calc.CanCalculate)
}

// poll ticks the clock until the condition holds, it checks the condition
// at most limit+1 times.
func (b *Bench) poll(ctx context.Context, what string, limit int, condition func() bool) error {
	for i := 0; ; i++ {
		if condition() {
			return nil
		}
		if i == limit {
			return fmt.Errorf("waiting for %s for %d cycles: %w", what, limit, ErrTimeout)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("waiting for %s: %w", what, err)
		}
		b.sim.Tick()
	}
}

func (b *Bench) checkAddress(address uint64) error {
	if b.allowAliasing && address <= b.unit.Where.Mask() {
		return nil
	}
	if !b.unit.InRange(address) {
		return fmt.Errorf("%w: %d, memory depth is %d", ErrAddressRange, address, b.unit.Memory().Depth())
	}
	return nil
}
