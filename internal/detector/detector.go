// Package detector handles detection of the unit a script is written for.
package detector

import (
	"github.com/retroenv/memcalc/internal/options"
	"github.com/retroenv/memcalc/internal/scenario"
	"github.com/retroenv/retrogolib/log"
)

// Detector selects the simulated unit from options or the script content.
type Detector struct {
	logger *log.Logger
}

// New creates a new unit detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the unit to simulate. A unit that is explicitly set in
// the options wins, otherwise the unit is detected from the script steps.
func (d *Detector) Detect(opts options.Program, script *scenario.Script) options.Unit {
	unit, _ := options.ParseUnit(opts.Unit)
	if unit == options.UnitAuto {
		unit = d.detectFromScript(script)
		d.logger.Debug("Auto-detected unit",
			log.String("unit", string(unit)),
			log.String("script", script.Name))
	}
	return unit
}

// detectFromScript selects the calculator for scripts that calculate and the
// plain storage unit for everything else.
func (d *Detector) detectFromScript(script *scenario.Script) options.Unit {
	if script.UsesCalculator() {
		return options.UnitCalculator
	}
	return options.UnitStorage
}
