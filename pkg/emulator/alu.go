package emulator

// compute evaluates a computation over A, D and M. int16 arithmetic wraps
// like the 16-bit ALU.
type compute func(a, d, m int16) int16

// condition decides a jump from the computed value
type condition func(v int16) bool

var computations = map[string]compute{
	"0":   func(a, d, m int16) int16 { return 0 },
	"1":   func(a, d, m int16) int16 { return 1 },
	"-1":  func(a, d, m int16) int16 { return -1 },
	"D":   func(a, d, m int16) int16 { return d },
	"A":   func(a, d, m int16) int16 { return a },
	"!D":  func(a, d, m int16) int16 { return ^d },
	"!A":  func(a, d, m int16) int16 { return ^a },
	"-D":  func(a, d, m int16) int16 { return -d },
	"-A":  func(a, d, m int16) int16 { return -a },
	"D+1": func(a, d, m int16) int16 { return d + 1 },
	"A+1": func(a, d, m int16) int16 { return a + 1 },
	"D-1": func(a, d, m int16) int16 { return d - 1 },
	"A-1": func(a, d, m int16) int16 { return a - 1 },
	"D+A": func(a, d, m int16) int16 { return d + a },
	"D-A": func(a, d, m int16) int16 { return d - a },
	"A-D": func(a, d, m int16) int16 { return a - d },
	"D&A": func(a, d, m int16) int16 { return d & a },
	"D|A": func(a, d, m int16) int16 { return d | a },
	"M":   func(a, d, m int16) int16 { return m },
	"!M":  func(a, d, m int16) int16 { return ^m },
	"-M":  func(a, d, m int16) int16 { return -m },
	"M+1": func(a, d, m int16) int16 { return m + 1 },
	"M-1": func(a, d, m int16) int16 { return m - 1 },
	"D+M": func(a, d, m int16) int16 { return d + m },
	"D-M": func(a, d, m int16) int16 { return d - m },
	"M-D": func(a, d, m int16) int16 { return m - d },
	"D&M": func(a, d, m int16) int16 { return d & m },
	"D|M": func(a, d, m int16) int16 { return d | m },
}

var conditions = map[string]condition{
	"":    func(v int16) bool { return false },
	"JMP": func(v int16) bool { return true },
	"JLE": func(v int16) bool { return v <= 0 },
	"JNE": func(v int16) bool { return v != 0 },
	"JLT": func(v int16) bool { return v < 0 },
	"JGE": func(v int16) bool { return v >= 0 },
	"JEQ": func(v int16) bool { return v == 0 },
	"JGT": func(v int16) bool { return v > 0 },
}

// Compute evaluates comp as the ALU would. ok is false for an unknown comp.
func Compute(comp string, a, d, m int16) (v int16, ok bool) {
	fn, ok := computations[comp]
	if !ok {
		return 0, false
	}
	return fn(a, d, m), true
}
