// Package calculator implements the averaging calculator: a sequencer that
// shares the store/recall unit with its callers, sums the recalled operands,
// divides the sum with the division pipeline and writes the quotient back to
// a fixed memory address.
package calculator

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/retroenv/memcalc/internal/divider"
	"github.com/retroenv/memcalc/internal/signal"
	"github.com/retroenv/memcalc/internal/storage"
)

// ResultAddress is the memory address the average is written to.
const ResultAddress = 4

// Signal names of the calculator specific part of the caller contract.
const (
	CalculateNowActive = "calculate_now_active"
	DivideBy           = "divide_by"
	CalculatedFlag     = "calculated"
)

// Config describes the geometry of a calculator.
type Config struct {
	Width uint // data width in bits, also used for the address and operand counter
	Depth int  // number of memory words, at least ResultAddress+1
}

// Calculator is the store/recall unit extended by the averaging sequencer.
type Calculator struct {
	*storage.Storage

	CalculateNow *signal.Signal
	DivideBy     *signal.Signal
	Calculated   *signal.Signal

	state         *signal.Signal
	counter       *signal.Signal
	summed        *signal.Signal
	result        *signal.Signal
	startDivision *signal.Signal
	dividing      *signal.Signal

	div *divider.Divider
}

// New creates a calculator and allocates its signals in the bank.
func New(bank *signal.Bank, cfg Config) (*Calculator, error) {
	if cfg.Depth <= ResultAddress {
		return nil, fmt.Errorf("memory depth %d can not hold the result address %d", cfg.Depth, ResultAddress)
	}
	if cfg.Width == 0 {
		return nil, errors.New("missing data width")
	}
	// the operand scan ends when the address signal reaches the result address
	if cfg.Width < uint(bits.Len(ResultAddress)) {
		return nil, fmt.Errorf("data width %d can not hold the result address %d", cfg.Width, ResultAddress)
	}

	st, err := storage.New(bank, storage.Config{Width: cfg.Width, Depth: cfg.Depth})
	if err != nil {
		return nil, fmt.Errorf("creating storage: %w", err)
	}
	div, err := divider.New(bank, cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("creating divider: %w", err)
	}

	c := &Calculator{
		Storage: st,
		div:     div,
	}
	signals := []struct {
		target **signal.Signal
		name   string
		width  uint
	}{
		{&c.CalculateNow, CalculateNowActive, 1},
		{&c.DivideBy, DivideBy, cfg.Width},
		{&c.Calculated, CalculatedFlag, 1},
		{&c.state, "fsm_state", 4},
		{&c.counter, "counter", cfg.Width},
		{&c.summed, "summed_number", cfg.Width},
		{&c.result, "result", cfg.Width},
		{&c.startDivision, "start_division", 1},
		{&c.dividing, "dividing", 1},
	}
	for _, sig := range signals {
		*sig.target, err = bank.New(sig.name, sig.width)
		if err != nil {
			return nil, fmt.Errorf("creating calculator signals: %w", err)
		}
	}
	return c, nil
}

// Step advances the store/recall unit, the divider and the sequencer by one
// clock edge. The sequencer steps last, the registers it drives override
// the values the store/recall arbiter latched on the same edge.
func (c *Calculator) Step() {
	c.Storage.Step()
	c.div.Step()
	c.step()
}

// State returns the current sequencer state.
func (c *Calculator) State() State {
	return State(c.state.Get())
}

// CanCalculate returns whether a new calculation may be requested.
func (c *Calculator) CanCalculate() bool {
	return !c.CalculateNow.Bool() && !c.Calculated.Bool()
}

// Divider returns the division pipeline of the calculator.
func (c *Calculator) Divider() *divider.Divider {
	return c.div
}

// Sum returns the running operand sum.
func (c *Calculator) Sum() uint64 {
	return c.summed.Get()
}

func (c *Calculator) step() {
	switch c.State() {
	case Reset:
		c.next(Inactive)

	case Inactive:
		c.counter.Set(0)
		c.Calculated.Set(0)
		c.summed.Set(0)
		c.result.Set(0)

		store, recall := c.StoreNow.Bool(), c.RecallNow.Bool()
		switch {
		case store && !recall:
			c.next(Storing)
		case recall && !store:
			c.next(Recalling)
		case c.CalculateNow.Bool():
			c.next(Calculating)
		}

	case Storing:
		if c.Stored.Bool() || (!c.StoreNow.Bool() && !c.RecallNow.Bool()) {
			c.next(Inactive)
		}

	case Recalling:
		if c.Recalled.Bool() || (!c.StoreNow.Bool() && !c.RecallNow.Bool()) {
			c.next(Inactive)
		}

	case Calculating:
		c.RecallNow.Set(0)
		c.next(Summing)

	case Summing:
		c.sum()

	case Division:
		c.div.Start.Set(1)
		c.div.Dividend.Set(c.summed.Get())
		c.div.Divisor.Set(c.DivideBy.Get())
		c.dividing.Set(1)
		c.startDivision.Set(0)
		c.next(Dividing)

	case Dividing:
		c.div.Start.Set(0)
		// the ready of the previous job is still visible while start is high
		if c.div.Ready() && !c.div.Start.Bool() {
			c.result.Set(c.div.Quotient())
			c.next(OutputIsReady)
		}

	case OutputIsReady:
		c.div.Start.Set(0)
		c.dividing.Set(0)
		c.Calculated.Set(1)
		c.RecallNow.Set(0)
		c.NumberToStore.Set(c.result.Get())
		c.next(StoringResult)

	case StoringResult:
		c.RecallNow.Set(0)
		c.StoreNow.Set(1)
		c.Where.Set(ResultAddress)
		if c.Where.Get() == ResultAddress && c.Stored.Bool() {
			c.StoreNow.Set(0)
			c.next(Inactive)
		}
	}
}

// sum recalls the operands while counting recall requests, accumulates the
// recalled words once the recall is acknowledged and starts the division
// when the counter reaches the divisor.
func (c *Calculator) sum() {
	counter := c.counter.Get()
	divideBy := c.DivideBy.Get()

	switch {
	case !c.Recalled.Bool():
		c.RecallNow.Set(1)
		c.StoreNow.Set(0)
		c.counter.Set(counter + 1)
		c.Where.Set(0)

	case counter < divideBy:
		c.summed.Set(c.summed.Get() + c.NumberRecalled())
		c.Where.Set(c.Where.Get() + 1)
		if c.Where.Get() == ResultAddress {
			c.Recalled.Set(0)
		}

	case counter == divideBy:
		c.Calculated.Set(0)
		c.startDivision.Set(1)
		c.dividing.Set(0)
		c.next(Division)
	}
}

func (c *Calculator) next(state State) {
	c.state.Set(uint64(state))
}
