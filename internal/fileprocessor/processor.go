// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/memcalc/internal/options"
	"github.com/retroenv/memcalc/internal/pipeline"
	"github.com/retroenv/memcalc/internal/scenario"
	"github.com/retroenv/retrogolib/log"
)

// ReportExtension is the file extension of generated report files.
const ReportExtension = ".report"

// ProcessFile runs the scenario script of the input file and writes the
// report to the output file or the console.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	pipe := pipeline.New(logger)
	if _, err := pipe.Execute(ctx, opts, writer); err != nil {
		return fmt.Errorf("executing pipeline: %w", err)
	}
	return nil
}

// ProcessScript runs a script that is already in memory, for example the
// generated average of the values passed on the command line.
func ProcessScript(ctx context.Context, logger *log.Logger, opts options.Program, script *scenario.Script) error {
	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	pipe := pipeline.New(logger)
	report, err := pipe.ExecuteScript(ctx, script, opts, writer)
	if err != nil {
		return fmt.Errorf("executing pipeline: %w", err)
	}

	for _, result := range report.Results {
		if result.Step.Op == scenario.Average {
			logger.Info("Average calculated",
				log.String("operands", result.Step.String()),
				log.Hex("result", result.Got))
		}
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ReportExtension
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("memcalc", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
