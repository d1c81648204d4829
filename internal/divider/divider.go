// Package divider implements a multi-cycle restoring integer divider with a
// start/ready handshake.
//
// A job is started by holding Start high for one cycle with Dividend and
// Divisor loaded. On the following edge the divider latches the operands and
// then computes one quotient bit per cycle. Ready is low while a job is in
// flight and goes high again after Width cycles, at which point Quotient and
// Remainder are valid and stay stable until the next start.
package divider

import (
	"fmt"

	"github.com/retroenv/memcalc/internal/signal"
)

// Divider is the division pipeline.
type Divider struct {
	Start    *signal.Signal
	Dividend *signal.Signal
	Divisor  *signal.Signal

	width    uint
	qr       *signal.Signal // remainder in the upper half, quotient in the lower half
	counter  *signal.Signal
	divisorR *signal.Signal

	jobs uint64
}

// New creates a divider for operands of the given width.
func New(bank *signal.Bank, width uint) (*Divider, error) {
	if width == 0 || 2*width > signal.MaxWidth {
		return nil, fmt.Errorf("unsupported divider width %d", width)
	}

	d := &Divider{width: width}
	signals := []struct {
		target **signal.Signal
		name   string
		width  uint
	}{
		{&d.Start, "divider_start", 1},
		{&d.Dividend, "divider_dividend", width},
		{&d.Divisor, "divider_divisor", width},
		{&d.qr, "divider_qr", 2 * width},
		{&d.counter, "divider_counter", counterWidth(width)},
		{&d.divisorR, "divider_divisor_r", width},
	}
	for _, sig := range signals {
		var err error
		*sig.target, err = bank.New(sig.name, sig.width)
		if err != nil {
			return nil, fmt.Errorf("creating divider signals: %w", err)
		}
	}
	return d, nil
}

// Step computes the divider registers for the current cycle.
func (d *Divider) Step() {
	if d.Start.Bool() {
		d.counter.Set(uint64(d.width))
		d.qr.Set(d.Dividend.Get())
		d.divisorR.Set(d.Divisor.Get())
		d.jobs++
		return
	}
	if d.Ready() {
		return
	}

	w := d.width
	qr := d.qr.Get()
	diff := (qr>>(w-1) - d.divisorR.Get()) & (1<<(w+1) - 1)
	lowMask := uint64(1)<<(w-1) - 1

	if diff&(1<<w) != 0 {
		d.qr.Set(qr << 1)
	} else {
		d.qr.Set(1 | (qr&lowMask)<<1 | (diff&(1<<w-1))<<w)
	}
	d.counter.Set(d.counter.Get() - 1)
}

// Ready returns whether no job is in flight.
func (d *Divider) Ready() bool {
	return d.counter.Get() == 0
}

// Quotient returns the quotient of the last job.
func (d *Divider) Quotient() uint64 {
	return d.qr.Get() & (1<<d.width - 1)
}

// Remainder returns the remainder of the last job.
func (d *Divider) Remainder() uint64 {
	return d.qr.Get() >> d.width
}

// Latency returns the number of cycles between the edge that latches a job
// and the cycle in which Ready is high again.
func (d *Divider) Latency() int {
	return int(d.width)
}

// Jobs returns the number of jobs the divider has latched.
func (d *Divider) Jobs() uint64 {
	return d.jobs
}

func counterWidth(width uint) uint {
	var n uint
	for v := width; v > 0; v >>= 1 {
		n++
	}
	return n
}
