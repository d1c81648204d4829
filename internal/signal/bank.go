package signal

import "fmt"

// Bank holds all signals of a design and commits their pending values.
type Bank struct {
	signals []*Signal
	byName  map[string]*Signal

	pending []*Signal
}

// NewBank returns an empty register bank.
func NewBank() *Bank {
	return &Bank{
		byName: make(map[string]*Signal),
	}
}

// New allocates a new signal with a reset value of zero.
func (b *Bank) New(name string, width uint) (*Signal, error) {
	if width == 0 || width > MaxWidth {
		return nil, fmt.Errorf("signal '%s': unsupported width %d", name, width)
	}
	if _, ok := b.byName[name]; ok {
		return nil, fmt.Errorf("signal '%s' already exists", name)
	}

	s := &Signal{
		bank:  b,
		name:  name,
		width: width,
		mask:  mask(width),
	}
	b.signals = append(b.signals, s)
	b.byName[name] = s
	return s, nil
}

// MustNew is like New but panics on an error. It is meant for signals whose
// name and width are fixed by the design itself.
func (b *Bank) MustNew(name string, width uint) *Signal {
	s, err := b.New(name, width)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the signal with the given name.
func (b *Bank) Lookup(name string) (*Signal, bool) {
	s, ok := b.byName[name]
	return s, ok
}

// Signals returns all signals in allocation order.
func (b *Bank) Signals() []*Signal {
	return b.signals
}

// Pending returns the number of signals with a latched next value.
func (b *Bank) Pending() int {
	return len(b.pending)
}

// Commit makes all pending values current at once and returns the signals
// whose value changed.
func (b *Bank) Commit() []*Signal {
	var changed []*Signal
	for _, s := range b.pending {
		if s.commit() {
			changed = append(changed, s)
		}
	}
	b.pending = b.pending[:0]
	return changed
}
