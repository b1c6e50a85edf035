package codegen

// pushD appends the data register to the top of the stack
func pushD() []string {
	return []string{"@SP", "A=M", "M=D", "@SP", "M=M+1"}
}

// popToAddressInD stores the address held in D into R13, then moves the top of
// the stack into the cell R13 points to
func popToAddressInD() []string {
	return []string{"@R13", "M=D", "@SP", "AM=M-1", "D=M", "@R13", "A=M", "M=D"}
}

// popD removes the top of the stack into the data register
func popD() []string {
	return []string{"@SP", "AM=M-1", "D=M"}
}

// at returns an A-instruction for a symbol or constant
func at(symbol string) string {
	return "@" + symbol
}

// label returns a label declaration
func label(symbol string) string {
	return "(" + symbol + ")"
}

func concat(parts ...[]string) []string {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]string, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
