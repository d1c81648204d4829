package calculator

import (
	"testing"

	"github.com/retroenv/memcalc/internal/signal"
	"github.com/retroenv/memcalc/internal/sim"
	"github.com/retroenv/retrogolib/assert"
)

func newCalculator(t *testing.T) (*Calculator, *sim.Simulator) {
	t.Helper()

	bank := signal.NewBank()
	c, err := New(bank, Config{Width: 16, Depth: 5})
	assert.NoError(t, err)

	s := sim.New(bank)
	s.Add(c)
	s.Tick()
	assert.Equal(t, Inactive, c.State())
	return c, s
}

func store(c *Calculator, s *sim.Simulator, value, address uint64) {
	s.Drive(c.Where, address)
	s.Drive(c.NumberToStore, value)
	s.Tick()
	s.DriveBool(c.StoreNow, true)
	s.Tick()
	s.Tick()
	s.DriveBool(c.StoreNow, false)
	s.Tick()
	s.Tick()
}

func TestNewInvalidConfig(t *testing.T) {
	bank := signal.NewBank()
	_, err := New(bank, Config{Width: 16, Depth: 4})
	assert.ErrorContains(t, err, "result address")

	_, err = New(bank, Config{Depth: 5})
	assert.ErrorContains(t, err, "width")

	_, err = New(bank, Config{Width: 2, Depth: 5})
	assert.ErrorContains(t, err, "data width 2 can not hold the result address 4")

	c, err := New(signal.NewBank(), Config{Width: 3, Depth: 5})
	assert.NoError(t, err)
	assert.NotNil(t, c)
}

func TestStoreRequestStates(t *testing.T) {
	c, s := newCalculator(t)

	s.DriveBool(c.StoreNow, true)
	s.Tick()
	assert.Equal(t, Inactive, c.State())
	s.Tick()
	assert.Equal(t, Storing, c.State())
	assert.True(t, c.Stored.Bool())
	s.Tick()
	assert.Equal(t, Inactive, c.State(), "stored acknowledge returns to inactive")

	// the held request starts another store before the release is seen
	s.DriveBool(c.StoreNow, false)
	s.Tick()
	assert.Equal(t, Storing, c.State())
	s.Tick()
	assert.Equal(t, Inactive, c.State())

	s.DriveBool(c.RecallNow, true)
	s.Tick()
	s.Tick()
	assert.Equal(t, Recalling, c.State())
	assert.True(t, c.Recalled.Bool())
	s.Tick()
	assert.Equal(t, Inactive, c.State())
}

func TestAverageSequence(t *testing.T) {
	c, s := newCalculator(t)

	store(c, s, 5, 1)
	store(c, s, 7, 2)
	store(c, s, 9, 4)
	store(c, s, 12, 3)
	assert.True(t, c.CanCalculate())

	s.DriveBool(c.CalculateNow, true)
	s.Drive(c.DivideBy, 3)

	var states []State
	cycles := 0
	for !c.Calculated.Bool() {
		s.Tick()
		cycles++
		if len(states) == 0 || states[len(states)-1] != c.State() {
			states = append(states, c.State())
		}
		if cycles > 100 {
			t.Fatalf("calculation did not finish, state %s", c.State())
		}
	}
	assert.False(t, c.CanCalculate())
	assert.Equal(t, StoringResult, c.State())
	assert.Equal(t, uint64(24), c.Sum())

	s.DriveBool(c.CalculateNow, false)
	for c.State() != Inactive {
		s.Tick()
	}
	s.Tick()

	want := []State{Inactive, Calculating, Summing, Division, Dividing, OutputIsReady, StoringResult}
	assert.Len(t, states, len(want))
	for i := range want {
		assert.Equal(t, want[i], states[i])
	}

	assert.Equal(t, uint64(8), c.Memory().Peek(ResultAddress))
	assert.Equal(t, uint64(1), c.Divider().Jobs())
	assert.True(t, c.CanCalculate())
	assert.Equal(t, uint64(0), c.Sum(), "inactive clears the sum")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "RESET", Reset.String())
	assert.Equal(t, "storing_result", StoringResult.String())
	assert.Equal(t, "unknown", State(42).String())
}
