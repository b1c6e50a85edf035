package assembler

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
)

const VariableBase = 16

var predefinedSymbols = map[string]int{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": 16384,
	"KBD":    24576,
}

// SymbolTable maps labels and variables to addresses
type SymbolTable struct {
	symbols map[string]int
	next    int // next free variable address
}

// NewSymbolTable creates a table holding only the predefined symbols
func NewSymbolTable() *SymbolTable {
	s := &SymbolTable{
		symbols: make(map[string]int, len(predefinedSymbols)+16),
		next:    VariableBase,
	}
	for i := range 16 {
		s.symbols["R"+strconv.Itoa(i)] = i
	}
	for name, addr := range predefinedSymbols {
		s.symbols[name] = addr
	}
	return s
}

// Bind binds a label to a ROM address
func (s *SymbolTable) Bind(name string, addr int) error {
	if _, exists := s.symbols[name]; exists {
		return fmt.Errorf("label symbol %q is already in use", name)
	}
	s.symbols[name] = addr
	return nil
}

// Lookup returns the address bound to name
func (s *SymbolTable) Lookup(name string) (int, bool) {
	addr, ok := s.symbols[name]
	return addr, ok
}

// Address returns the address bound to name, allocating the next variable
// cell on first use
func (s *SymbolTable) Address(name string) int {
	if addr, ok := s.symbols[name]; ok {
		return addr
	}
	addr := s.next
	s.symbols[name] = addr
	s.next++
	log.Debug("Allocated variable", "symbol", name, "address", addr)
	return addr
}

// Len returns the number of bound symbols
func (s *SymbolTable) Len() int {
	return len(s.symbols)
}
