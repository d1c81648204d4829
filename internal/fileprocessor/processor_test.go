package fileprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/memcalc/internal/options"
	"github.com/retroenv/memcalc/internal/scenario"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.scn", "b.scn", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("wait 1\n"), 0600))
	}

	opts := options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.scn")}}
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts = options.Program{Parameters: options.Parameters{Input: "single.scn"}}
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"single.scn"}, files)

	opts = options.Program{Parameters: options.Parameters{Batch: "[unterminated"}}
	_, err = GetFilesToProcess(&opts)
	assert.ErrorContains(t, err, "globbing batch pattern")
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "tests/average.report", GenerateOutputFilename("tests/average.scn"))
	assert.Equal(t, "story.report", GenerateOutputFilename("story"))
}

func TestProcessFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "average.scn")
	script := "wait 5\nstore 1 5\nstore 2 7\nstore 3 12\ncalculate 3\nrecall 4 8\n"
	assert.NoError(t, os.WriteFile(input, []byte(script), 0600))

	opts := options.Program{
		Parameters: options.Parameters{
			Input:  input,
			Output: GenerateOutputFilename(input),
		},
		Flags: options.Flags{Quiet: true},
	}
	assert.NoError(t, ProcessFile(context.Background(), logger, opts))

	data, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	output := string(data)
	assert.True(t, strings.HasPrefix(output, "; scenario: average\n"))
	assert.Contains(t, output, "; unit: calculator")
	assert.Contains(t, output, "cycle")
}

func TestProcessScript(t *testing.T) {
	logger := log.NewTestLogger(t)
	output := filepath.Join(t.TempDir(), "values.report")

	opts := options.Program{Parameters: options.Parameters{Output: output}}
	assert.NoError(t, ProcessScript(context.Background(), logger, opts, scenario.AverageOf(300, 403, 203)))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "average 300 403 203")
	assert.Contains(t, string(data), "$012E")
}

func TestProcessFileCancelled(t *testing.T) {
	logger := log.NewTestLogger(t)
	output := filepath.Join(t.TempDir(), "cancelled.report")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options.Program{Parameters: options.Parameters{Output: output}}
	err := ProcessScript(ctx, logger, opts, scenario.AverageStory())
	assert.True(t, errors.Is(err, context.Canceled))
}
