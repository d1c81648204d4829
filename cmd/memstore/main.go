// Package main implements the storage unit acceptance run
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/memcalc/internal/config"
	"github.com/retroenv/memcalc/internal/options"
	"github.com/retroenv/memcalc/internal/pipeline"
	"github.com/retroenv/memcalc/internal/scenario"
	"github.com/retroenv/memcalc/internal/verification"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// expectedCells are the final words of the storage story: address 90 and 91
// decode to the words 10 and 11 of the 16 word memory.
var expectedCells = map[int]uint64{
	10: 0x7474,
	11: 0x8888,
}

type optionFlags struct {
	output string
	trace  bool
	debug  bool
	quiet  bool
}

func main() {
	opts := readArguments()

	if !opts.quiet {
		printBanner()
	}

	logger := config.CreateLogger(opts.debug, opts.quiet)
	if err := runStory(app.Context(), logger, opts); err != nil {
		logger.Error("Storage story failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := optionFlags{}

	flags.StringVar(&opts.output, "o", "", "name of the report file, printed on console if no name given")
	flags.BoolVar(&opts.trace, "trace", false, "append a per cycle signal trace to the report")
	flags.BoolVar(&opts.debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.quiet, "q", false, "perform operations quietly")

	if err := flags.Parse(os.Args[1:]); err != nil || flags.NArg() > 0 {
		printBanner()
		fmt.Printf("usage: memstore [options]\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	return opts
}

func printBanner() {
	fmt.Println("[-----------------------------------]")
	fmt.Println("[ memstore - storage unit simulator ]")
	fmt.Printf("[-----------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func runStory(ctx context.Context, logger *log.Logger, opts optionFlags) error {
	output, err := createWriter(opts.output)
	if err != nil {
		return err
	}
	defer func() {
		if closer, ok := output.(io.Closer); ok && output != os.Stdout {
			_ = closer.Close()
		}
	}()

	program := options.Program{
		Flags: options.Flags{
			Unit:          string(options.UnitStorage),
			AllowAliasing: true,
			Trace:         opts.trace,
			Quiet:         opts.quiet,
		},
	}

	pipe := pipeline.New(logger)
	report, err := pipe.ExecuteScript(ctx, scenario.StorageStory(), program, output)
	if err != nil {
		return fmt.Errorf("running storage story: %w", err)
	}

	if err := verification.VerifyCells(logger, expectedCells, report.Cells); err != nil {
		return fmt.Errorf("verifying memory: %w", err)
	}
	if !opts.quiet {
		logger.Info("Memory content matches", log.Int("cycles", int(report.Cycles)))
	}
	return nil
}

func createWriter(name string) (io.Writer, error) {
	if name == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("creating file '%s': %w", name, err)
	}
	return file, nil
}
