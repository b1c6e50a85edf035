package codegen

import (
	"hackvm/pkg/command"
	"strconv"
)

// Frame layout below LCL, in push order
var framePointers = []string{"LCL", "ARG", "THIS", "THAT"}

// frameSize is the return address plus the saved pointers
var frameSize = len(framePointers) + 1

// ReturnLabel returns the return-address label of the call site at index
func ReturnLabel(function string, index int) string {
	return function + "$ret." + strconv.Itoa(index)
}

// TranslateFunction emits the entry label followed by one zeroed cell per
// local variable
func TranslateFunction(c command.FunctionDefinition) []string {
	out := []string{label(c.FunctionName())}
	for range c.NVars() {
		out = append(out, "@0", "D=A")
		out = append(out, pushD()...)
	}
	return out
}

// TranslateCall saves the caller's frame, repositions ARG and LCL and jumps
// to the callee. The return label follows the jump.
func TranslateCall(c command.FunctionCall, index int) []string {
	ret := ReturnLabel(c.FunctionName(), index)

	out := concat([]string{at(ret), "D=A"}, pushD())
	for _, ptr := range framePointers {
		out = append(out, at(ptr), "D=M")
		out = append(out, pushD()...)
	}

	return append(out,
		// ARG = SP - 5 - nArgs
		"@SP",
		"D=M",
		at(strconv.Itoa(frameSize)),
		"D=D-A",
		at(strconv.Itoa(c.NArgs())),
		"D=D-A",
		"@ARG",
		"M=D",
		// LCL = SP
		"@SP",
		"D=M",
		"@LCL",
		"M=D",
		at(c.FunctionName()),
		"0;JMP",
		label(ret),
	)
}

// TranslateReturn moves the return value to ARG[0], restores the caller's
// frame and jumps to the saved return address. R13 holds the frame base and
// R14 the return address.
func TranslateReturn() []string {
	out := []string{
		"@LCL",
		"D=M",
		"@R13",
		"M=D",
		at(strconv.Itoa(frameSize)),
		"A=D-A",
		"D=M",
		"@R14",
		"M=D",
	}

	out = append(out, popD()...)
	out = append(out,
		"@ARG",
		"A=M",
		"M=D",
		"@ARG",
		"D=M+1",
		"@SP",
		"M=D",
	)

	for i := len(framePointers) - 1; i >= 0; i-- {
		out = append(out, "@R13", "AM=M-1", "D=M", at(framePointers[i]), "M=D")
	}

	return append(out, "@R14", "A=M", "0;JMP")
}
