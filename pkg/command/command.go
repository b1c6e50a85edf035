package command

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidSegment   = errors.New("invalid segment")
	ErrNegativeIndex    = errors.New("negative index")
	ErrNegativeCount    = errors.New("negative count")
	ErrInvalidSymbol    = errors.New("invalid symbol")
)

// Command is one validated VM command. The set of implementations is closed.
type Command interface {
	fmt.Stringer
	command()
}

type Operation string

// Arithmetic and logical operations
const (
	OpAdd Operation = "add"
	OpSub Operation = "sub"
	OpNeg Operation = "neg"
	OpEq  Operation = "eq"
	OpGt  Operation = "gt"
	OpLt  Operation = "lt"
	OpAnd Operation = "and"
	OpOr  Operation = "or"
	OpNot Operation = "not"
)

// Memory transfer operations
const (
	OpPush Operation = "push"
	OpPop  Operation = "pop"
)

// Branching operations
const (
	OpLabel  Operation = "label"
	OpGoto   Operation = "goto"
	OpIfGoto Operation = "if-goto"
)

// Function operations, used only for keyword lookup by the parser
const (
	OpFunction Operation = "function"
	OpCall     Operation = "call"
	OpReturn   Operation = "return"
)

type Segment string

const (
	SegLocal    Segment = "local"
	SegArgument Segment = "argument"
	SegThis     Segment = "this"
	SegThat     Segment = "that"
	SegPointer  Segment = "pointer"
	SegTemp     Segment = "temp"
	SegConstant Segment = "constant"
	SegStatic   Segment = "static"
)

var arithmeticOps = map[Operation]bool{
	OpAdd: true, OpSub: true, OpNeg: true,
	OpEq: true, OpGt: true, OpLt: true,
	OpAnd: true, OpOr: true, OpNot: true,
}

var segments = map[Segment]bool{
	SegLocal: true, SegArgument: true, SegThis: true, SegThat: true,
	SegPointer: true, SegTemp: true, SegConstant: true, SegStatic: true,
}

var symbolRegex = regexp.MustCompile(`^[A-Za-z_.$:][A-Za-z0-9_.$:]*$`)

// IsSymbol reports whether s is a valid label or function name: non-empty,
// not starting with a digit, made of letters, digits, '_', '.', '$' and ':'
func IsSymbol(s string) bool {
	return symbolRegex.MatchString(s)
}

// IsArithmetic reports whether op is an arithmetic/logical operation
func IsArithmetic(op Operation) bool {
	return arithmeticOps[op]
}

// IsSegment reports whether s names a memory segment
func IsSegment(s Segment) bool {
	return segments[s]
}

// ArithmeticLogical is a stack operation on the top one or two cells
type ArithmeticLogical struct {
	op Operation
}

// NewArithmeticLogical validates op and builds the command
func NewArithmeticLogical(op Operation) (ArithmeticLogical, error) {
	if !IsArithmetic(op) {
		return ArithmeticLogical{}, fmt.Errorf("%w %q for arithmetic-logical command", ErrInvalidOperation, op)
	}
	return ArithmeticLogical{op: op}, nil
}

func (c ArithmeticLogical) Operation() Operation { return c.op }

// IsUnary reports whether the operation consumes a single operand
func (c ArithmeticLogical) IsUnary() bool { return c.op == OpNeg || c.op == OpNot }

// IsComparison reports whether the operation produces a boolean sentinel
func (c ArithmeticLogical) IsComparison() bool {
	return c.op == OpEq || c.op == OpGt || c.op == OpLt
}

func (c ArithmeticLogical) String() string { return string(c.op) }
func (ArithmeticLogical) command()         {}

// MemoryTransfer moves a value between a segment cell and the stack
type MemoryTransfer struct {
	op      Operation
	segment Segment
	index   int
}

// NewMemoryTransfer validates the fields and builds the command. The index is
// not bounded above; segment specific limits are checked by the translator.
func NewMemoryTransfer(op Operation, segment Segment, index int) (MemoryTransfer, error) {
	if op != OpPush && op != OpPop {
		return MemoryTransfer{}, fmt.Errorf("%w %q for memory transfer command", ErrInvalidOperation, op)
	}
	if !IsSegment(segment) {
		return MemoryTransfer{}, fmt.Errorf("%w %q for memory transfer command", ErrInvalidSegment, segment)
	}
	if index < 0 {
		return MemoryTransfer{}, fmt.Errorf("%w %d for memory transfer command", ErrNegativeIndex, index)
	}
	return MemoryTransfer{op: op, segment: segment, index: index}, nil
}

func (c MemoryTransfer) Operation() Operation { return c.op }
func (c MemoryTransfer) Segment() Segment     { return c.segment }
func (c MemoryTransfer) Index() int           { return c.index }

func (c MemoryTransfer) String() string {
	return fmt.Sprintf("%s %s %d", c.op, c.segment, c.index)
}

func (MemoryTransfer) command() {}

// Branching declares a label or jumps to one
type Branching struct {
	op    Operation
	label string
}

// NewBranching validates op and the label name and builds the command
func NewBranching(op Operation, label string) (Branching, error) {
	if op != OpLabel && op != OpGoto && op != OpIfGoto {
		return Branching{}, fmt.Errorf("%w %q for branching command", ErrInvalidOperation, op)
	}
	if !IsSymbol(label) {
		return Branching{}, fmt.Errorf("%w %q for branching command", ErrInvalidSymbol, label)
	}
	return Branching{op: op, label: label}, nil
}

func (c Branching) Operation() Operation { return c.op }
func (c Branching) Label() string        { return c.label }
func (c Branching) String() string       { return fmt.Sprintf("%s %s", c.op, c.label) }
func (Branching) command()               {}

// FunctionCall calls a function after its arguments have been pushed
type FunctionCall struct {
	name  string
	nArgs int
}

func NewFunctionCall(name string, nArgs int) (FunctionCall, error) {
	if !IsSymbol(name) {
		return FunctionCall{}, fmt.Errorf("%w %q for call command", ErrInvalidSymbol, name)
	}
	if nArgs < 0 {
		return FunctionCall{}, fmt.Errorf("%w %d of arguments for call command", ErrNegativeCount, nArgs)
	}
	return FunctionCall{name: name, nArgs: nArgs}, nil
}

func (c FunctionCall) FunctionName() string { return c.name }
func (c FunctionCall) NArgs() int           { return c.nArgs }
func (c FunctionCall) String() string       { return fmt.Sprintf("call %s %d", c.name, c.nArgs) }
func (FunctionCall) command()               {}

// FunctionDefinition marks a function entry point with nVars locals
type FunctionDefinition struct {
	name  string
	nVars int
}

func NewFunctionDefinition(name string, nVars int) (FunctionDefinition, error) {
	if !IsSymbol(name) {
		return FunctionDefinition{}, fmt.Errorf("%w %q for function command", ErrInvalidSymbol, name)
	}
	if nVars < 0 {
		return FunctionDefinition{}, fmt.Errorf("%w %d of locals for function command", ErrNegativeCount, nVars)
	}
	return FunctionDefinition{name: name, nVars: nVars}, nil
}

func (c FunctionDefinition) FunctionName() string { return c.name }
func (c FunctionDefinition) NVars() int           { return c.nVars }
func (c FunctionDefinition) String() string       { return fmt.Sprintf("function %s %d", c.name, c.nVars) }
func (FunctionDefinition) command()               {}

// Return leaves the current function
type Return struct{}

func (Return) String() string { return "return" }
func (Return) command()       {}
