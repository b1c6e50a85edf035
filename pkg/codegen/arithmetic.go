package codegen

import (
	"fmt"
	"hackvm/pkg/command"
	"strconv"
)

var unaryTable = map[command.Operation]string{
	command.OpNeg: "M=-M",
	command.OpNot: "M=!M",
}

var binaryTable = map[command.Operation]string{
	command.OpAdd: "M=D+M",
	command.OpSub: "M=M-D",
	command.OpAnd: "M=D&M",
	command.OpOr:  "M=D|M",
}

var comparisonTable = map[command.Operation]string{
	command.OpEq: "JEQ",
	command.OpGt: "JGT",
	command.OpLt: "JLT",
}

// comparisonLabel returns the internal label of the given kind for the
// comparison at command index i
func comparisonLabel(kind string, i int) string {
	return "CMP$" + kind + "." + strconv.Itoa(i)
}

// TranslateArithmetic translates a stack operation. The command index is only
// used to name the branches of a comparison.
func TranslateArithmetic(c command.ArithmeticLogical, index int) ([]string, error) {
	op := c.Operation()

	if code, ok := unaryTable[op]; ok {
		return []string{"@SP", "A=M-1", code}, nil
	}

	if code, ok := binaryTable[op]; ok {
		return concat(popD(), []string{"A=A-1", code}), nil
	}

	if jump, ok := comparisonTable[op]; ok {
		if op == command.OpEq {
			return equality(index), nil
		}
		return ordering(jump, index), nil
	}

	return nil, fmt.Errorf("%w %q for arithmetic-logical command", command.ErrInvalidOperation, op)
}

// equality compares the two top cells by their difference, which is zero
// exactly when they are equal even if the subtraction wraps
func equality(index int) []string {
	return concat(
		popD(),
		[]string{"A=A-1", "D=M-D"},
		booleanResult("JEQ", index),
	)
}

// ordering compares x (below) with y (top). Operands of different signs are
// decided by the sign of x alone so the subtraction never overflows.
func ordering(jump string, index int) []string {
	xNeg := comparisonLabel("XNEG", index)
	diff := comparisonLabel("DIFF", index)
	test := comparisonLabel("TEST", index)

	return concat(
		popD(),
		[]string{
			"@R13",
			"M=D",
			"@SP",
			"A=M-1",
			"D=M",
			at(xNeg),
			"D;JLT",
			"@R13",
			"D=M",
			at(diff),
			"D;JGE",
			"D=1",
			at(test),
			"0;JMP",
			label(xNeg),
			"@R13",
			"D=M",
			at(diff),
			"D;JLT",
			"D=-1",
			at(test),
			"0;JMP",
			label(diff),
			"@R13",
			"D=M",
			"@SP",
			"A=M-1",
			"D=M-D",
			label(test),
		},
		booleanResult(jump, index),
	)
}

// booleanResult replaces the top of the stack with -1 when D satisfies
// jump, 0 otherwise
func booleanResult(jump string, index int) []string {
	isTrue := comparisonLabel("TRUE", index)
	end := comparisonLabel("END", index)

	return []string{
		at(isTrue),
		"D;" + jump,
		"@SP",
		"A=M-1",
		"M=0",
		at(end),
		"0;JMP",
		label(isTrue),
		"@SP",
		"A=M-1",
		"M=-1",
		label(end),
	}
}
