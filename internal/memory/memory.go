// Package memory implements the memory unit: a fixed size array of fixed
// width words with one write capable port and one read enabled port.
package memory

import (
	"fmt"
	"math/bits"

	"github.com/retroenv/memcalc/internal/signal"
)

// Memory is a synchronous memory array. Its cells are registers of the
// signal bank, writes become visible at the commit of the clock edge on
// which the write enable was high.
type Memory struct {
	name    string
	width   uint
	depth   int
	adrBits uint

	cells []*signal.Signal
}

// New allocates a memory of depth words of the given width.
func New(bank *signal.Bank, name string, width uint, depth int) (*Memory, error) {
	if depth < 1 {
		return nil, fmt.Errorf("memory '%s': invalid depth %d", name, depth)
	}

	m := &Memory{
		name:    name,
		width:   width,
		depth:   depth,
		adrBits: AddressBits(depth),
		cells:   make([]*signal.Signal, depth),
	}
	for i := range m.cells {
		cell, err := bank.New(fmt.Sprintf("%s[%d]", name, i), width)
		if err != nil {
			return nil, fmt.Errorf("allocating memory cell: %w", err)
		}
		m.cells[i] = cell
	}
	return m, nil
}

// AddressBits returns the width of the address bus for a memory of the
// given depth.
func AddressBits(depth int) uint {
	if depth <= 1 {
		return 1
	}
	return uint(bits.Len(uint(depth - 1)))
}

// Width returns the word width in bits.
func (m *Memory) Width() uint {
	return m.width
}

// Depth returns the number of words.
func (m *Memory) Depth() int {
	return m.depth
}

// AddressBits returns the width of the address bus.
func (m *Memory) AddressBits() uint {
	return m.adrBits
}

// Index decodes an address driven on the bus into a cell index.
// Address bits above the bus width are dropped and indexes past the last
// cell select the last cell.
func (m *Memory) Index(address uint64) int {
	a := address & (1<<m.adrBits - 1)
	if a >= uint64(m.depth) {
		return m.depth - 1
	}
	return int(a)
}

// Peek returns the committed content of the cell the address decodes to.
func (m *Memory) Peek(address uint64) uint64 {
	return m.cells[m.Index(address)].Get()
}

// Cells returns a copy of the committed content of all cells.
func (m *Memory) Cells() []uint64 {
	values := make([]uint64, len(m.cells))
	for i, cell := range m.cells {
		values[i] = cell.Get()
	}
	return values
}

func (m *Memory) write(index int, data uint64) {
	m.cells[index].Set(data)
}
