package codegen

import (
	"fmt"
	"hackvm/pkg/command"
)

// ScopedLabel returns the assembler symbol for a user label declared inside
// function. Labels outside any function are kept as written.
func ScopedLabel(function, name string) string {
	if function == "" {
		return name
	}
	return function + "$" + name
}

// TranslateBranching translates label, goto and if-goto. if-goto jumps when
// the popped value is nonzero.
func TranslateBranching(c command.Branching, function string) ([]string, error) {
	target := ScopedLabel(function, c.Label())

	switch c.Operation() {
	case command.OpLabel:
		return []string{label(target)}, nil
	case command.OpGoto:
		return []string{at(target), "0;JMP"}, nil
	case command.OpIfGoto:
		return concat(popD(), []string{at(target), "D;JNE"}), nil
	default:
		return nil, fmt.Errorf("%w %q for branching command", command.ErrInvalidOperation, c.Operation())
	}
}
