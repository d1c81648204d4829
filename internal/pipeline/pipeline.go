// Package pipeline orchestrates the scenario simulation workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/memcalc/internal/bench"
	"github.com/retroenv/memcalc/internal/calculator"
	"github.com/retroenv/memcalc/internal/config"
	"github.com/retroenv/memcalc/internal/detector"
	"github.com/retroenv/memcalc/internal/loader"
	"github.com/retroenv/memcalc/internal/options"
	"github.com/retroenv/memcalc/internal/scenario"
	"github.com/retroenv/memcalc/internal/signal"
	"github.com/retroenv/memcalc/internal/sim"
	"github.com/retroenv/memcalc/internal/storage"
	"github.com/retroenv/memcalc/internal/trace"
	"github.com/retroenv/memcalc/internal/verification"
	"github.com/retroenv/memcalc/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete simulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new simulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute loads the scenario script of the input file and runs it.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, w io.Writer) (*writer.Report, error) {
	script, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading script: %w", err)
	}
	return p.ExecuteScript(ctx, script, opts, w)
}

// ExecuteScript runs a script that is already in memory against a newly
// created unit, writes the report and verifies all expectations.
func (p *Pipeline) ExecuteScript(ctx context.Context, script *scenario.Script, opts options.Program,
	w io.Writer) (*writer.Report, error) {

	unit := p.detector.Detect(opts, script)
	geometry := options.NewGeometry(unit, opts.Width, opts.Depth)

	b, err := p.createBench(geometry, opts)
	if err != nil {
		return nil, fmt.Errorf("creating bench: %w", err)
	}

	var recorder *trace.Recorder
	if opts.Trace {
		recorder = trace.New(opts.TraceLimit, traceSignals(b.Simulator().Bank())...)
		b.Simulator().AddObserver(recorder)
	}

	p.printInfo(opts, script, geometry)

	results, err := p.runScript(ctx, b, script)
	if err != nil {
		return nil, fmt.Errorf("running script: %w", err)
	}

	report := &writer.Report{
		Script:   script,
		Geometry: geometry,
		Cycles:   b.Cycle(),
		Results:  results,
		Cells:    b.Unit().Memory().Cells(),
	}
	if recorder != nil {
		report.Trace = recorder
	}

	if err := writer.New(w).Write(report); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	if err := verification.VerifyResults(p.logger, results); err != nil {
		return report, fmt.Errorf("verification failed: %w", err)
	}
	if script.Expectations() > 0 {
		p.logger.Info("Verification successful", log.Int("checks", script.Expectations()))
	}
	return report, nil
}

// createBench creates the simulated unit for the geometry and the bench
// that drives it.
func (p *Pipeline) createBench(geometry options.Geometry, opts options.Program) (*bench.Bench, error) {
	bank := signal.NewBank()
	s := sim.New(bank)
	benchOpts := config.BenchOptions(opts)

	switch geometry.Unit {
	case options.UnitStorage:
		unit, err := storage.New(bank, storage.Config{
			Width:       geometry.Width,
			Depth:       geometry.Depth,
			AddressBits: geometry.AddressBits,
		})
		if err != nil {
			return nil, fmt.Errorf("creating storage unit: %w", err)
		}
		s.Add(unit)
		return bench.New(p.logger, s, unit, benchOpts), nil

	case options.UnitCalculator:
		calc, err := calculator.New(bank, calculator.Config{
			Width: geometry.Width,
			Depth: geometry.Depth,
		})
		if err != nil {
			return nil, fmt.Errorf("creating calculator: %w", err)
		}
		s.Add(calc)
		return bench.NewCalculator(p.logger, s, calc, benchOpts), nil

	default:
		return nil, fmt.Errorf("unsupported unit '%s'", geometry.Unit)
	}
}

// runScript executes all steps and collects the values that were read back.
func (p *Pipeline) runScript(ctx context.Context, b *bench.Bench, script *scenario.Script) ([]verification.Result, error) {
	var results []verification.Result

	for _, step := range script.Steps {
		value, ok, err := b.Execute(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("executing '%s' in line %d: %w", step.String(), step.Line, err)
		}
		if !ok {
			continue
		}

		results = append(results, verification.Result{
			Step:  step,
			Cycle: b.Cycle(),
			Got:   value,
		})
	}
	return results, nil
}

// traceSignals returns all signals of the bank except the memory words.
func traceSignals(bank *signal.Bank) []*signal.Signal {
	var signals []*signal.Signal
	for _, sig := range bank.Signals() {
		if strings.Contains(sig.Name(), "[") {
			continue
		}
		signals = append(signals, sig)
	}
	return signals
}

// printInfo prints information about the scenario being processed.
func (p *Pipeline) printInfo(opts options.Program, script *scenario.Script, geometry options.Geometry) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running scenario",
		log.String("script", script.Name),
		log.Int("steps", len(script.Steps)),
		log.String("unit", string(geometry.Unit)),
		log.Int("width", int(geometry.Width)),
		log.Int("depth", geometry.Depth),
	)
	if opts.AllowAliasing {
		p.logger.Warn("Address aliasing is enabled, addresses past the memory depth map to existing words")
	}
}
