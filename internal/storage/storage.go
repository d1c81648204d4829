// Package storage implements the store/recall unit: a memory together with
// the arbiter that turns store and recall requests into memory port control
// signals and completion pulses.
package storage

import (
	"fmt"

	"github.com/retroenv/memcalc/internal/memory"
	"github.com/retroenv/memcalc/internal/signal"
)

// Signal names of the caller facing contract.
const (
	WhereToStoreOrRecall = "where_to_store_or_recall"
	NumberToStore        = "number_to_store"
	StoreNowActive       = "store_now_active"
	RecallNowActive      = "recall_now_active"
	Stored               = "stored"
	Recalled             = "recalled"
)

// Config describes the geometry of a storage unit.
type Config struct {
	Width       uint // data width in bits
	Depth       int  // number of words
	AddressBits uint // width of the caller facing address signal, defaults to Width
}

// Storage is the memory unit with its store/recall arbiter.
// The arbiter is the only owner of the memory ports.
type Storage struct {
	Where         *signal.Signal
	NumberToStore *signal.Signal
	StoreNow      *signal.Signal
	RecallNow     *signal.Signal
	Stored        *signal.Signal
	Recalled      *signal.Signal

	mem   *memory.Memory
	write *memory.WritePort
	read  *memory.ReadPort
}

// New creates a storage unit and allocates its signals in the bank.
func New(bank *signal.Bank, cfg Config) (*Storage, error) {
	if cfg.AddressBits == 0 {
		cfg.AddressBits = cfg.Width
	}

	mem, err := memory.New(bank, "storage", cfg.Width, cfg.Depth)
	if err != nil {
		return nil, fmt.Errorf("creating memory: %w", err)
	}
	write, err := mem.WritePort(bank)
	if err != nil {
		return nil, fmt.Errorf("creating write port: %w", err)
	}
	read, err := mem.ReadPort(bank)
	if err != nil {
		return nil, fmt.Errorf("creating read port: %w", err)
	}

	s := &Storage{
		mem:   mem,
		write: write,
		read:  read,
	}

	signals := []struct {
		target **signal.Signal
		name   string
		width  uint
	}{
		{&s.Where, WhereToStoreOrRecall, cfg.AddressBits},
		{&s.NumberToStore, NumberToStore, cfg.Width},
		{&s.StoreNow, StoreNowActive, 1},
		{&s.RecallNow, RecallNowActive, 1},
		{&s.Stored, Stored, 1},
		{&s.Recalled, Recalled, 1},
	}
	for _, sig := range signals {
		*sig.target, err = bank.New(sig.name, sig.width)
		if err != nil {
			return nil, fmt.Errorf("creating storage signals: %w", err)
		}
	}

	return s, nil
}

// Step computes the registered arbiter outputs and memory port state for
// the current cycle. A store request wins over a simultaneous recall
// request. Both completion pulses echo the request level of the previous
// cycle, they stay high as long as the request is held.
func (s *Storage) Step() {
	store := s.StoreNow.Bool()
	recall := s.RecallNow.Bool() && !store

	s.Stored.SetBool(store)
	s.write.We.SetBool(store)
	s.Recalled.SetBool(recall)
	s.read.Re.SetBool(recall)

	s.write.Clock(s.Where.Get(), s.NumberToStore.Get())
	s.read.Clock(s.Where.Get())
}

// NumberRecalled returns the word read back through the shared port, it
// reflects the address that was applied in the previous cycle.
func (s *Storage) NumberRecalled() uint64 {
	return s.write.ReadData()
}

// Available returns whether no store or recall is requested or being
// acknowledged.
func (s *Storage) Available() bool {
	return !s.Stored.Bool() && !s.StoreNow.Bool() &&
		!s.Recalled.Bool() && !s.RecallNow.Bool()
}

// Memory returns the memory array of the unit.
func (s *Storage) Memory() *memory.Memory {
	return s.mem
}

// InRange returns whether the address selects its own memory cell.
func (s *Storage) InRange(address uint64) bool {
	return address < uint64(s.mem.Depth()) && address <= s.Where.Mask()
}
