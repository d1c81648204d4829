package bench

import (
	"context"
	"fmt"

	"github.com/retroenv/memcalc/internal/calculator"
	"github.com/retroenv/memcalc/internal/scenario"
)

// Execute performs a single script step. Steps that read a value back
// return it with ok set.
func (b *Bench) Execute(ctx context.Context, step scenario.Step) (value uint64, ok bool, err error) {
	switch step.Op {
	case scenario.Wait:
		return 0, false, b.Wait(ctx, step.Cycles)

	case scenario.Store:
		return 0, false, b.Store(ctx, step.Value, step.Address)

	case scenario.Recall:
		value, err = b.Recall(ctx, step.Address)
		return value, err == nil, err

	case scenario.Calculate:
		return 0, false, b.Calculate(ctx, step.Value)

	case scenario.Average:
		value, err = b.Average(ctx, step.Operands...)
		return value, err == nil, err

	default:
		return 0, false, fmt.Errorf("unsupported operation '%s'", step.Op)
	}
}

// Result reads the last calculated average from the result address.
func (b *Bench) Result(ctx context.Context) (uint64, error) {
	if b.calc == nil {
		return 0, ErrNoCalculator
	}
	return b.Recall(ctx, calculator.ResultAddress)
}
