package bench

import (
	"context"
	"fmt"

	"github.com/retroenv/memcalc/internal/calculator"
	"github.com/retroenv/retrogolib/log"
)

// Store writes the value to the address and waits for the acknowledge.
func (b *Bench) Store(ctx context.Context, value, address uint64) error {
	if err := b.checkAddress(address); err != nil {
		return err
	}
	if value > b.unit.NumberToStore.Mask() {
		return fmt.Errorf("%w: %d does not fit %d bits", ErrValueRange, value, b.unit.NumberToStore.Width())
	}
	if err := b.WaitStorageAvailable(ctx); err != nil {
		return err
	}

	b.logger.Debug("Storing number",
		log.Int("value", int(value)),
		log.Int("address", int(address)))

	b.sim.Drive(b.unit.Where, address)
	b.sim.Drive(b.unit.NumberToStore, value)
	b.sim.Tick()
	b.sim.DriveBool(b.unit.StoreNow, true)
	b.sim.Tick()

	if err := b.poll(ctx, "number to be stored", b.limits.Store, b.unit.Stored.Bool); err != nil {
		return err
	}

	b.sim.DriveBool(b.unit.StoreNow, false)
	b.sim.Tick()
	return nil
}

// Recall reads the value at the address.
func (b *Bench) Recall(ctx context.Context, address uint64) (uint64, error) {
	if err := b.checkAddress(address); err != nil {
		return 0, err
	}
	if err := b.WaitStorageAvailable(ctx); err != nil {
		return 0, err
	}

	b.sim.Drive(b.unit.Where, address)
	b.sim.DriveBool(b.unit.RecallNow, true)
	b.sim.Tick()

	if err := b.poll(ctx, "number to be recalled", b.limits.Recall, b.unit.Recalled.Bool); err != nil {
		return 0, err
	}
	value := b.unit.NumberRecalled()

	b.logger.Debug("Recalled number",
		log.Int("value", int(value)),
		log.Int("address", int(address)))

	b.sim.DriveBool(b.unit.RecallNow, false)
	b.sim.Tick()
	return value, nil
}

// Calculate requests a calculation with the given divisor and waits until
// the calculated flag is raised. The result is written to
// calculator.ResultAddress.
func (b *Bench) Calculate(ctx context.Context, divideBy uint64) error {
	if err := b.WaitCalculatorAvailable(ctx); err != nil {
		return err
	}
	if divideBy > b.calc.DivideBy.Mask() {
		return fmt.Errorf("%w: divisor %d does not fit %d bits", ErrValueRange, divideBy, b.calc.DivideBy.Width())
	}

	b.logger.Debug("Calculating", log.Int("divide_by", int(divideBy)))
	start := b.sim.Cycle()

	b.sim.DriveBool(b.calc.CalculateNow, true)
	b.sim.Drive(b.calc.DivideBy, divideBy)
	if err := b.poll(ctx, "calculation to be done", b.limits.Calculate, b.calc.Calculated.Bool); err != nil {
		return err
	}

	b.logger.Debug("Calculation done", log.Int("cycles", int(b.sim.Cycle()-start)))
	b.sim.DriveBool(b.calc.CalculateNow, false)
	b.sim.Tick()
	return nil
}

// Average stores the operands, calculates their average and recalls it.
func (b *Bench) Average(ctx context.Context, operands ...uint64) (uint64, error) {
	if b.calc == nil {
		return 0, ErrNoCalculator
	}
	if len(operands) != OperandCount {
		return 0, fmt.Errorf("average needs %d operands but got %d", OperandCount, len(operands))
	}

	if err := b.Store(ctx, 0, 0); err != nil {
		return 0, fmt.Errorf("clearing address 0: %w", err)
	}
	for i, operand := range operands {
		if err := b.Store(ctx, operand, uint64(i+1)); err != nil {
			return 0, fmt.Errorf("storing operand %d: %w", i+1, err)
		}
	}

	if err := b.Calculate(ctx, OperandCount); err != nil {
		return 0, fmt.Errorf("calculating: %w", err)
	}

	average, err := b.Recall(ctx, calculator.ResultAddress)
	if err != nil {
		return 0, fmt.Errorf("recalling result: %w", err)
	}
	return average, nil
}
