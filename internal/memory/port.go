package memory

import "github.com/retroenv/memcalc/internal/signal"

// WritePort is a write capable port with a registered, write first read.
// The read data always reflects the address applied in the previous cycle,
// a write performed on that address is visible starting the cycle after
// the write edge.
type WritePort struct {
	mem *Memory

	We     *signal.Signal // write enable
	adrReg *signal.Signal
}

// ReadPort is a port with a read enable that gates its address register.
type ReadPort struct {
	mem *Memory

	Re     *signal.Signal // read enable
	adrReg *signal.Signal
}

// WritePort creates the write capable port of the memory.
func (m *Memory) WritePort(bank *signal.Bank) (*WritePort, error) {
	we, err := bank.New(m.name+"_we", 1)
	if err != nil {
		return nil, err
	}
	adr, err := bank.New(m.name+"_wadr", m.adrBits)
	if err != nil {
		return nil, err
	}
	return &WritePort{mem: m, We: we, adrReg: adr}, nil
}

// ReadPort creates the read enabled port of the memory.
func (m *Memory) ReadPort(bank *signal.Bank) (*ReadPort, error) {
	re, err := bank.New(m.name+"_re", 1)
	if err != nil {
		return nil, err
	}
	adr, err := bank.New(m.name+"_radr", m.adrBits)
	if err != nil {
		return nil, err
	}
	return &ReadPort{mem: m, Re: re, adrReg: adr}, nil
}

// Clock computes the port registers for the current cycle from the address
// and data driven on the bus.
func (p *WritePort) Clock(address, data uint64) {
	index := p.mem.Index(address)
	if p.We.Bool() {
		p.mem.write(index, data)
	}
	p.adrReg.Set(uint64(index))
}

// ReadData returns the word at the registered address.
func (p *WritePort) ReadData() uint64 {
	return p.mem.cells[p.adrReg.Get()].Get()
}

// Clock computes the port registers for the current cycle from the address
// driven on the bus.
func (p *ReadPort) Clock(address uint64) {
	if p.Re.Bool() {
		p.adrReg.Set(uint64(p.mem.Index(address)))
	}
}

// ReadData returns the word at the registered address.
func (p *ReadPort) ReadData() uint64 {
	return p.mem.cells[p.adrReg.Get()].Get()
}
