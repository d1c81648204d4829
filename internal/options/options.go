// Package options contains the program options.
package options

import "strings"

// Unit names a simulated design.
type Unit string

// Supported units.
const (
	UnitAuto       Unit = ""
	UnitStorage    Unit = "storage"
	UnitCalculator Unit = "calculator"
)

// Default geometries of the units.
const (
	StorageWidth       = 16
	StorageDepth       = 16
	StorageAddressBits = 8

	CalculatorWidth = 16
	CalculatorDepth = 5
)

// Parameters contains file path options.
type Parameters struct {
	Input  string // scenario script
	Output string // report file, printed on console if empty
	Batch  string // glob pattern of scenario scripts
	Values string // comma separated operands to average
}

// Flags contains behavior options.
type Flags struct {
	Unit          string // storage or calculator, detected from the script if empty
	Width         uint   // data width, 0 selects the unit default
	Depth         int    // memory depth, 0 selects the unit default
	AllowAliasing bool   // accept addresses past the memory depth
	Trace         bool   // append a signal trace to the report
	TraceLimit    int    // number of traced cycles, 0 for all
	Debug         bool
	Quiet         bool
}

// Program options of the simulator.
type Program struct {
	Parameters
	Flags
}

// Geometry is the resolved configuration of the simulated unit.
type Geometry struct {
	Unit        Unit
	Width       uint
	Depth       int
	AddressBits uint
}

// NewGeometry returns the geometry for the unit with the defaults of the
// unit applied for unset values.
func NewGeometry(unit Unit, width uint, depth int) Geometry {
	g := Geometry{Unit: unit, Width: width, Depth: depth}

	switch unit {
	case UnitStorage:
		if g.Width == 0 {
			g.Width = StorageWidth
		}
		if g.Depth == 0 {
			g.Depth = StorageDepth
		}
		g.AddressBits = StorageAddressBits

	default:
		g.Unit = UnitCalculator
		if g.Width == 0 {
			g.Width = CalculatorWidth
		}
		if g.Depth == 0 {
			g.Depth = CalculatorDepth
		}
		g.AddressBits = g.Width
	}
	return g
}

// ParseUnit converts a unit name, an empty name selects auto detection.
func ParseUnit(name string) (Unit, bool) {
	switch unit := Unit(strings.ToLower(name)); unit {
	case UnitAuto, UnitStorage, UnitCalculator:
		return unit, true
	default:
		return UnitAuto, false
	}
}
