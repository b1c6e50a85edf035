package codegen

import (
	"errors"
	"fmt"
	"hackvm/pkg/command"
)

var (
	ErrUnsupportedSegment = errors.New("unsupported segment")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrUnknownCommand     = errors.New("unknown command")
)

// Context carries everything a single command translation depends on besides
// the command itself.
type Context struct {
	Unit     string // source unit name, scopes static symbols
	Function string // enclosing function, scopes branching labels
	Index    int    // command index, unique over the compilation unit
}

// Translate dispatches cmd to the translator for its variant
func Translate(cmd command.Command, ctx Context) ([]string, error) {
	switch c := cmd.(type) {
	case command.ArithmeticLogical:
		return TranslateArithmetic(c, ctx.Index)
	case command.MemoryTransfer:
		return TranslateMemoryTransfer(c, ctx.Unit)
	case command.Branching:
		return TranslateBranching(c, ctx.Function)
	case command.FunctionDefinition:
		return TranslateFunction(c), nil
	case command.FunctionCall:
		return TranslateCall(c, ctx.Index), nil
	case command.Return:
		return TranslateReturn(), nil
	default:
		return nil, fmt.Errorf("%w %T", ErrUnknownCommand, cmd)
	}
}
