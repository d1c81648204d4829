// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/memcalc/internal/bench"
	"github.com/retroenv/memcalc/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "" && opts.Values == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" && opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, nil
}

// ParseValues parses the comma separated operands of an average.
func ParseValues(s string) ([]uint64, error) {
	fields := strings.Split(s, ",")
	if len(fields) != bench.OperandCount {
		return nil, fmt.Errorf("expected %d comma separated values but got %d", bench.OperandCount, len(fields))
	}

	values := make([]uint64, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseUint(strings.TrimSpace(field), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing value '%s': %w", field, err)
		}
		values = append(values, value)
	}
	return values, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: memcalc [options] <scenario script>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after scenario script, please pass the script as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	unit, ok := options.ParseUnit(opts.Unit)
	if !ok {
		return fmt.Errorf("unsupported unit: %s. Valid options: %s, %s",
			opts.Unit, options.UnitStorage, options.UnitCalculator)
	}
	opts.Unit = string(unit)

	if opts.Values != "" {
		if unit == options.UnitStorage {
			return fmt.Errorf("averaging values needs the %s unit", options.UnitCalculator)
		}
		if _, err := ParseValues(opts.Values); err != nil {
			return fmt.Errorf("invalid values: %w", err)
		}
	}

	if opts.Depth < 0 {
		return fmt.Errorf("invalid depth %d", opts.Depth)
	}
	if opts.TraceLimit < 0 {
		return fmt.Errorf("invalid trace limit %d", opts.TraceLimit)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the scenario script to run")
	flags.StringVar(&opts.Output, "o", "", "name of the report file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "run a batch of scenario scripts of given path and file mask with automatic report file naming, for example *.scn")
	flags.StringVar(&opts.Values, "values", "", "calculate the average of 3 comma separated values instead of running a script, for example 5,7,12")
	flags.StringVar(&opts.Unit, "u", "", "unit to simulate (storage, calculator) - if not detected from the script")
	flags.UintVar(&opts.Width, "width", 0, "data width in bits, 0 for the unit default")
	flags.IntVar(&opts.Depth, "depth", 0, "number of memory words, 0 for the unit default")
	flags.BoolVar(&opts.AllowAliasing, "alias", false, "accept addresses past the memory depth that decode to an aliased word")
	flags.BoolVar(&opts.Trace, "trace", false, "append a per cycle signal trace to the report")
	flags.IntVar(&opts.TraceLimit, "tracelimit", 0, "number of last cycles to keep in the trace, 0 for all")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
