// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/memcalc/internal/bench"
	"github.com/retroenv/memcalc/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// BenchOptions returns the test bench options for the program options.
func BenchOptions(opts options.Program) bench.Options {
	benchOpts := bench.DefaultOptions()
	benchOpts.AllowAliasing = opts.AllowAliasing
	return benchOpts
}
