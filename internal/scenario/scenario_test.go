package scenario

import (
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParse(t *testing.T) {
	input := `# averaging
wait 5
store 1 0x5665   # hex value
RECALL 1 0x5665
recall 2
calculate 3
average 5 7 12 8
`
	script, err := Parse("test", strings.NewReader(input))
	assert.NoError(t, err)
	assert.Equal(t, "test", script.Name)
	assert.Len(t, script.Steps, 6)

	assert.Equal(t, Wait, script.Steps[0].Op)
	assert.Equal(t, 5, script.Steps[0].Cycles)
	assert.Equal(t, 2, script.Steps[0].Line)

	assert.Equal(t, uint64(1), script.Steps[1].Address)
	assert.Equal(t, uint64(0x5665), script.Steps[1].Value)

	assert.Equal(t, Recall, script.Steps[2].Op)
	assert.True(t, script.Steps[2].HasExpected)
	assert.Equal(t, uint64(0x5665), script.Steps[2].Expected)
	assert.False(t, script.Steps[3].HasExpected)

	assert.Equal(t, uint64(3), script.Steps[4].Value)
	assert.Len(t, script.Steps[5].Operands, 3)
	assert.Equal(t, uint64(8), script.Steps[5].Expected)

	assert.True(t, script.UsesCalculator())
	assert.Equal(t, 2, script.Expectations())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{name: "unknown operation", input: "jump 1", errMsg: "unknown operation 'jump'"},
		{name: "invalid number", input: "store 1 x", errMsg: "invalid number 'x'"},
		{name: "negative number", input: "wait -1", errMsg: "invalid number"},
		{name: "wait too long", input: "wait 0x8000000000000000", errMsg: "exceeds 2147483647"},
		{name: "missing value", input: "store 1", errMsg: "store expects <address> <value>"},
		{name: "too many recall arguments", input: "recall 1 2 3", errMsg: "recall expects"},
		{name: "missing divisor", input: "calculate", errMsg: "calculate expects"},
		{name: "too few operands", input: "average 1 2", errMsg: "average expects"},
		{name: "line number", input: "wait 1\n\nwait", errMsg: "test:3:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test", strings.NewReader(tt.input))
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestStepString(t *testing.T) {
	steps := []struct {
		step Step
		want string
	}{
		{Step{Op: Wait, Cycles: 5}, "wait 5"},
		{Step{Op: Store, Address: 1, Value: 7}, "store 1 7"},
		{Step{Op: Recall, Address: 4, Expected: 8, HasExpected: true}, "recall 4 8"},
		{Step{Op: Calculate, Value: 3}, "calculate 3"},
		{Step{Op: Average, Operands: []uint64{5, 7, 12}}, "average 5 7 12"},
	}
	for _, tt := range steps {
		assert.Equal(t, tt.want, tt.step.String())
	}
}

func TestStories(t *testing.T) {
	average := AverageStory()
	assert.True(t, average.UsesCalculator())
	assert.Equal(t, 6, average.Expectations())

	storage := StorageStory()
	assert.False(t, storage.UsesCalculator())
	assert.Equal(t, 4, storage.Expectations())
	assert.Len(t, storage.Steps, 1+50+7)

	values := AverageOf(3, 10, 20)
	assert.True(t, values.UsesCalculator())
	assert.Equal(t, 0, values.Expectations())
}
