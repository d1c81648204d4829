package options

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNewGeometry(t *testing.T) {
	tests := []struct {
		name  string
		unit  Unit
		width uint
		depth int
		want  Geometry
	}{
		{
			name: "storage defaults",
			unit: UnitStorage,
			want: Geometry{Unit: UnitStorage, Width: 16, Depth: 16, AddressBits: 8},
		},
		{
			name: "calculator defaults",
			unit: UnitCalculator,
			want: Geometry{Unit: UnitCalculator, Width: 16, Depth: 5, AddressBits: 16},
		},
		{
			name:  "calculator override",
			unit:  UnitCalculator,
			width: 8,
			depth: 8,
			want:  Geometry{Unit: UnitCalculator, Width: 8, Depth: 8, AddressBits: 8},
		},
		{
			name: "auto falls back to calculator",
			unit: UnitAuto,
			want: Geometry{Unit: UnitCalculator, Width: 16, Depth: 5, AddressBits: 16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewGeometry(tt.unit, tt.width, tt.depth)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUnit(t *testing.T) {
	unit, ok := ParseUnit("Storage")
	assert.True(t, ok)
	assert.Equal(t, UnitStorage, unit)

	unit, ok = ParseUnit("")
	assert.True(t, ok)
	assert.Equal(t, UnitAuto, unit)

	_, ok = ParseUnit("cpu")
	assert.False(t, ok)
}
