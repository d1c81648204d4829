// Package loader handles scenario script loading operations.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/memcalc/internal/options"
	"github.com/retroenv/memcalc/internal/scenario"
)

// Loader handles loading scenario scripts from disk.
type Loader struct{}

// New creates a new script loader.
func New() *Loader {
	return &Loader{}
}

// Load parses the scenario script of the input file. The script is named
// after the file without its extension.
func (l *Loader) Load(opts options.Program) (*scenario.Script, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	script, err := scenario.Parse(scriptName(opts.Input), file)
	if err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return script, nil
}

// LoadFromBytes parses a script that is already in memory.
func (l *Loader) LoadFromBytes(name string, data []byte) (*scenario.Script, error) {
	script, err := scenario.Parse(name, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return script, nil
}

func scriptName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
