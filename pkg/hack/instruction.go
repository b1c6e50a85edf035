package hack

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const MaxConstant = 1<<15 - 1

var (
	ErrInvalidSymbol = errors.New("invalid symbol")
	ErrInvalidDest   = errors.New("invalid dest")
	ErrInvalidComp   = errors.New("invalid comp")
	ErrInvalidJump   = errors.New("invalid jump")
)

// Instruction is one line of symbolic assembly
type Instruction interface {
	fmt.Stringer
	instruction()
}

// AInstruction loads a constant or the address bound to a symbol into A
type AInstruction struct {
	Symbol string
}

// CInstruction computes Comp, stores it in Dest and optionally jumps
type CInstruction struct {
	Dest string
	Comp string
	Jump string
}

// Label binds Symbol to the address of the next instruction
type Label struct {
	Symbol string
}

// CompCodes maps a computation to its a-bit and six c-bits
var CompCodes = map[string]string{
	"0":   "0101010",
	"1":   "0111111",
	"-1":  "0111010",
	"D":   "0001100",
	"A":   "0110000",
	"!D":  "0001101",
	"!A":  "0110001",
	"-D":  "0001111",
	"-A":  "0110011",
	"D+1": "0011111",
	"A+1": "0110111",
	"D-1": "0001110",
	"A-1": "0110010",
	"D+A": "0000010",
	"D-A": "0010011",
	"A-D": "0000111",
	"D&A": "0000000",
	"D|A": "0010101",
	"M":   "1110000",
	"!M":  "1110001",
	"-M":  "1110011",
	"M+1": "1110111",
	"M-1": "1110010",
	"D+M": "1000010",
	"D-M": "1010011",
	"M-D": "1000111",
	"D&M": "1000000",
	"D|M": "1010101",
}

// JumpCodes maps a jump mnemonic to its three j-bits
var JumpCodes = map[string]string{
	"":    "000",
	"JGT": "001",
	"JEQ": "010",
	"JGE": "011",
	"JLT": "100",
	"JNE": "101",
	"JLE": "110",
	"JMP": "111",
}

var symbolRegex = regexp.MustCompile(`^[A-Za-z_.$:][A-Za-z0-9_.$:]*$`)

// IsSymbol reports whether s can name a label or variable
func IsSymbol(s string) bool {
	return symbolRegex.MatchString(s)
}

// NewAInstruction validates symbol, which is either a decimal constant or a
// symbol name
func NewAInstruction(symbol string) (AInstruction, error) {
	if isDecimal(symbol) {
		if n, err := strconv.Atoi(symbol); err != nil || n > MaxConstant {
			return AInstruction{}, fmt.Errorf("constant %q out of range", symbol)
		}
		return AInstruction{Symbol: symbol}, nil
	}
	if !IsSymbol(symbol) {
		return AInstruction{}, fmt.Errorf("%w %q for A-instruction", ErrInvalidSymbol, symbol)
	}
	return AInstruction{Symbol: symbol}, nil
}

// IsConstant reports whether the instruction loads a literal
func (a AInstruction) IsConstant() bool {
	return isDecimal(a.Symbol)
}

func (a AInstruction) String() string { return "@" + a.Symbol }
func (AInstruction) instruction()     {}

// NewCInstruction validates every field
func NewCInstruction(dest, comp, jump string) (CInstruction, error) {
	if !isDest(dest) {
		return CInstruction{}, fmt.Errorf("%w %q for C-instruction", ErrInvalidDest, dest)
	}
	if _, ok := CompCodes[comp]; !ok {
		return CInstruction{}, fmt.Errorf("%w %q for C-instruction", ErrInvalidComp, comp)
	}
	if _, ok := JumpCodes[jump]; !ok {
		return CInstruction{}, fmt.Errorf("%w %q for C-instruction", ErrInvalidJump, jump)
	}
	return CInstruction{Dest: dest, Comp: comp, Jump: jump}, nil
}

// Stores reports whether the result is written to register r ('A', 'D' or 'M')
func (c CInstruction) Stores(r byte) bool {
	return strings.IndexByte(c.Dest, r) >= 0
}

// ReadsMemory reports whether the computation reads M
func (c CInstruction) ReadsMemory() bool {
	return strings.IndexByte(c.Comp, 'M') >= 0
}

func (c CInstruction) String() string {
	s := c.Comp
	if c.Dest != "" {
		s = c.Dest + "=" + s
	}
	if c.Jump != "" {
		s += ";" + c.Jump
	}
	return s
}

func (CInstruction) instruction() {}

func NewLabel(symbol string) (Label, error) {
	if !IsSymbol(symbol) {
		return Label{}, fmt.Errorf("%w %q for label", ErrInvalidSymbol, symbol)
	}
	return Label{Symbol: symbol}, nil
}

func (l Label) String() string { return "(" + l.Symbol + ")" }
func (Label) instruction()     {}

// CleanLine removes the comment and every whitespace character from line
func CleanLine(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.Join(strings.Fields(line), "")
}

// Parse parses one cleaned, non-empty line
func Parse(text string) (Instruction, error) {
	if strings.HasPrefix(text, "@") {
		return NewAInstruction(text[1:])
	}
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		return NewLabel(text[1 : len(text)-1])
	}

	var dest, jump string
	if i := strings.IndexByte(text, '='); i >= 0 {
		dest, text = text[:i], text[i+1:]
		if dest == "" {
			return nil, fmt.Errorf("%w %q for C-instruction", ErrInvalidDest, dest)
		}
	}
	if i := strings.IndexByte(text, ';'); i >= 0 {
		text, jump = text[:i], text[i+1:]
		if jump == "" {
			return nil, fmt.Errorf("%w %q for C-instruction", ErrInvalidJump, jump)
		}
	}
	return NewCInstruction(dest, text, jump)
}

// isDest accepts any combination of A, D and M without repetition
func isDest(dest string) bool {
	seen := map[rune]bool{}
	for _, r := range dest {
		if (r != 'A' && r != 'D' && r != 'M') || seen[r] {
			return false
		}
		seen[r] = true
	}
	return true
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
