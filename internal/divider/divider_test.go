package divider

import (
	"testing"

	"github.com/retroenv/memcalc/internal/signal"
	"github.com/retroenv/memcalc/internal/sim"
	"github.com/retroenv/retrogolib/assert"
)

func divide(t *testing.T, width uint, dividend, divisor uint64) (uint64, uint64, int) {
	t.Helper()

	bank := signal.NewBank()
	d, err := New(bank, width)
	assert.NoError(t, err)
	s := sim.New(bank)
	s.Add(d)

	s.DriveBool(d.Start, true)
	s.Drive(d.Dividend, dividend)
	s.Drive(d.Divisor, divisor)
	s.Tick()
	assert.True(t, d.Ready(), "job is latched on the edge after start")

	s.DriveBool(d.Start, false)
	s.Tick()
	assert.False(t, d.Ready())

	cycles := 0
	for !d.Ready() {
		s.Tick()
		cycles++
		if cycles > 2*int(width) {
			t.Fatalf("divider did not become ready")
		}
	}
	assert.Equal(t, uint64(1), d.Jobs())
	return d.Quotient(), d.Remainder(), cycles
}

func TestDivide(t *testing.T) {
	tests := []struct {
		name          string
		width         uint
		dividend      uint64
		divisor       uint64
		wantQuotient  uint64
		wantRemainder uint64
	}{
		{name: "average of three", width: 16, dividend: 24, divisor: 3, wantQuotient: 8},
		{name: "truncating mean", width: 16, dividend: 906, divisor: 3, wantQuotient: 302},
		{name: "remainder", width: 8, dividend: 100, divisor: 7, wantQuotient: 14, wantRemainder: 2},
		{name: "divide by one", width: 8, dividend: 255, divisor: 1, wantQuotient: 255},
		{name: "dividend smaller than divisor", width: 16, dividend: 2, divisor: 9, wantRemainder: 2},
		{name: "divide by zero", width: 16, dividend: 7, divisor: 0, wantQuotient: 0xffff, wantRemainder: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotient, remainder, cycles := divide(t, tt.width, tt.dividend, tt.divisor)
			assert.Equal(t, tt.wantQuotient, quotient)
			assert.Equal(t, tt.wantRemainder, remainder)
			assert.Equal(t, int(tt.width), cycles)
		})
	}
}

func TestDivideExhaustive(t *testing.T) {
	for dividend := uint64(0); dividend < 256; dividend++ {
		for divisor := uint64(1); divisor < 256; divisor += 7 {
			quotient, remainder, _ := divide(t, 8, dividend, divisor)
			if quotient != dividend/divisor || remainder != dividend%divisor {
				t.Fatalf("%d / %d: got %d rem %d", dividend, divisor, quotient, remainder)
			}
		}
	}
}

func TestNewInvalidWidth(t *testing.T) {
	bank := signal.NewBank()
	_, err := New(bank, 0)
	assert.Error(t, err)
	_, err = New(bank, 33)
	assert.Error(t, err)

	d, err := New(bank, 16)
	assert.NoError(t, err)
	assert.Equal(t, 16, d.Latency())
}
