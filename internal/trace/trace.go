// Package trace records the values of selected signals on every clock edge.
package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/memcalc/internal/signal"
	"github.com/retroenv/retrogolib/set"
)

// Recorder is a simulator observer that samples signals after every edge.
type Recorder struct {
	signals  []*signal.Signal
	selected set.Set[string]

	cycles  []uint64
	samples [][]uint64 // indexed by cycle sample, then signal
	limit   int
}

// New returns a recorder for the given signals. A limit greater than zero
// caps the number of recorded cycles, the oldest cycles are dropped.
func New(limit int, signals ...*signal.Signal) *Recorder {
	r := &Recorder{
		selected: set.New[string](),
		limit:    limit,
	}
	for _, sig := range signals {
		if r.selected.Contains(sig.Name()) {
			continue
		}
		r.selected.Add(sig.Name())
		r.signals = append(r.signals, sig)
	}
	return r
}

// Observe samples all recorded signals.
func (r *Recorder) Observe(cycle uint64, _ []*signal.Signal) {
	sample := make([]uint64, len(r.signals))
	for i, sig := range r.signals {
		sample[i] = sig.Get()
	}
	r.cycles = append(r.cycles, cycle)
	r.samples = append(r.samples, sample)

	if r.limit > 0 && len(r.cycles) > r.limit {
		r.cycles = r.cycles[1:]
		r.samples = r.samples[1:]
	}
}

// Len returns the number of recorded cycles.
func (r *Recorder) Len() int {
	return len(r.cycles)
}

// Values returns the recorded values of the named signal.
func (r *Recorder) Values(name string) ([]uint64, error) {
	index, err := r.index(name)
	if err != nil {
		return nil, err
	}

	values := make([]uint64, len(r.samples))
	for i, sample := range r.samples {
		values[i] = sample[index]
	}
	return values, nil
}

// Rising returns how often the named signal went from zero to not zero
// within the recorded cycles.
func (r *Recorder) Rising(name string) (int, error) {
	values, err := r.Values(name)
	if err != nil {
		return 0, err
	}

	edges := 0
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 && values[i] != 0 {
			edges++
		}
	}
	return edges, nil
}

// Reset drops all recorded cycles.
func (r *Recorder) Reset() {
	r.cycles = r.cycles[:0]
	r.samples = r.samples[:0]
}

// WriteTable writes the recorded cycles as a fixed width table.
func (r *Recorder) WriteTable(w io.Writer) error {
	widths := make([]int, len(r.signals))
	header := []string{fmt.Sprintf("%8s", "cycle")}
	for i, sig := range r.signals {
		widths[i] = max(len(sig.Name()), 5)
		header = append(header, fmt.Sprintf("%*s", widths[i], sig.Name()))
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, " ")); err != nil {
		return fmt.Errorf("writing trace header: %w", err)
	}

	for i, sample := range r.samples {
		line := []string{fmt.Sprintf("%8d", r.cycles[i])}
		for j, value := range sample {
			line = append(line, fmt.Sprintf("%*d", widths[j], value))
		}
		if _, err := fmt.Fprintln(w, strings.Join(line, " ")); err != nil {
			return fmt.Errorf("writing trace line: %w", err)
		}
	}
	return nil
}

func (r *Recorder) index(name string) (int, error) {
	if !r.selected.Contains(name) {
		return 0, fmt.Errorf("signal '%s' is not recorded", name)
	}
	for i, sig := range r.signals {
		if sig.Name() == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("signal '%s' is not recorded", name)
}
