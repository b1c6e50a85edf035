package emulator

import (
	"errors"
	"fmt"
	"hackvm/pkg/hack"
	"strconv"
)

const MemorySize = 24576 // RAM and screen; KBD is not backed

var (
	ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
	ErrOutOfMemory      = errors.New("out of memory")
	ErrUnlinked         = errors.New("unlinked symbol")
)

// Emulator executes a linked program against a flat memory array
type Emulator struct {
	program []op // decoded program
	mem     []int16

	a  int16
	d  int16
	pc int

	maxSteps int // maximum steps for RunUntilHalt (0 = unlimited)
	steps    int // steps executed
}

// op is a decoded instruction
type op struct {
	isA     bool
	value   int16
	comp    compute
	readsM  bool
	destA   bool
	destD   bool
	destM   bool
	jump    condition
	printed string
}

type Option func(*Emulator)

// WithMaxSteps sets a step budget after which RunUntilHalt returns ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(e *Emulator) { e.maxSteps = n }
}

// WithMemory sets initial memory cells (address -> value)
func WithMemory(cells map[int]int16) Option {
	return func(e *Emulator) {
		for addr, v := range cells {
			e.mem[addr] = v
		}
	}
}

// NewEmulator decodes a linked program. Every A-instruction must hold a constant.
func NewEmulator(program []hack.Instruction, opts ...Option) (*Emulator, error) {
	e := &Emulator{mem: make([]int16, MemorySize)}
	if err := e.Load(program); err != nil {
		return nil, err
	}

	for _, o := range opts {
		o(e)
	}

	return e, nil
}

// Load replaces the program and resets registers
func (e *Emulator) Load(program []hack.Instruction) error {
	decoded := make([]op, 0, len(program))
	for i, inst := range program {
		o, err := decode(inst)
		if err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
		decoded = append(decoded, o)
	}

	e.program = decoded
	e.ResetRegisters()
	return nil
}

// ResetRegisters clears A, D, PC and the step counter. Memory is kept.
func (e *Emulator) ResetRegisters() {
	e.a, e.d, e.pc = 0, 0, 0
	e.steps = 0
}

// Reset clears registers and memory
func (e *Emulator) Reset() {
	e.ResetRegisters()
	clear(e.mem)
}

func decode(inst hack.Instruction) (op, error) {
	switch in := inst.(type) {
	case hack.AInstruction:
		if !in.IsConstant() {
			return op{}, fmt.Errorf("%w %q", ErrUnlinked, in.Symbol)
		}
		v, err := strconv.Atoi(in.Symbol)
		if err != nil || v > hack.MaxConstant {
			return op{}, fmt.Errorf("constant %q out of range", in.Symbol)
		}
		return op{isA: true, value: int16(v), printed: in.String()}, nil
	case hack.CInstruction:
		comp, ok := computations[in.Comp]
		if !ok {
			return op{}, fmt.Errorf("%w %q", hack.ErrInvalidComp, in.Comp)
		}
		jump, ok := conditions[in.Jump]
		if !ok {
			return op{}, fmt.Errorf("%w %q", hack.ErrInvalidJump, in.Jump)
		}
		return op{
			comp:    comp,
			readsM:  in.ReadsMemory(),
			destA:   in.Stores('A'),
			destD:   in.Stores('D'),
			destM:   in.Stores('M'),
			jump:    jump,
			printed: in.String(),
		}, nil
	default:
		return op{}, fmt.Errorf("cannot execute %v", inst)
	}
}

// Step executes a single instruction, returning (halted, error). Running past
// the last instruction halts.
func (e *Emulator) Step() (bool, error) {
	if e.pc < 0 || e.pc >= len(e.program) {
		return true, nil
	}

	in := &e.program[e.pc]
	e.steps++

	if in.isA {
		e.a = in.value
		e.pc++
		return false, nil
	}

	addr := int(uint16(e.a))
	var m int16
	if in.readsM || in.destM {
		if addr >= MemorySize {
			return false, fmt.Errorf("%w: M[%d] at pc %d (%s)", ErrOutOfMemory, addr, e.pc, in.printed)
		}
		if in.readsM {
			m = e.mem[addr]
		}
	}

	result := in.comp(e.a, e.d, m)
	target := e.a

	if in.destM {
		e.mem[addr] = result
	}
	if in.destA {
		e.a = result
	}
	if in.destD {
		e.d = result
	}

	if in.jump(result) {
		e.pc = int(uint16(target))
	} else {
		e.pc++
	}

	return false, nil
}

// Run executes at most steps instructions, stopping early on halt
func (e *Emulator) Run(steps int) error {
	for range steps {
		halted, err := e.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
	return nil
}

// RunUntilHalt executes until the program runs past its end
func (e *Emulator) RunUntilHalt() error {
	for {
		if e.maxSteps > 0 && e.steps >= e.maxSteps {
			return ErrMaxStepsExceeded
		}
		halted, err := e.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// Peek returns the memory cell at addr
func (e *Emulator) Peek(addr int) int16 {
	return e.mem[addr]
}

// Poke writes the memory cell at addr
func (e *Emulator) Poke(addr int, v int16) {
	e.mem[addr] = v
}

// Memory returns the memory array
func (e *Emulator) Memory() []int16 {
	return e.mem
}

func (e *Emulator) A() int16   { return e.a }
func (e *Emulator) D() int16   { return e.d }
func (e *Emulator) PC() int    { return e.pc }
func (e *Emulator) Steps() int { return e.steps }
