package assembler

import (
	"bufio"
	"bytes"
	"fmt"
	"hackvm/pkg/hack"
	"io"
	"os"
	"strconv"
	"strings"
)

// Assembler translates symbolic instructions into binary machine code
type Assembler struct {
	program []hack.Instruction // symbolic program, labels included
	output  string             // output .hack file

	symbols  *SymbolTable
	commands []hack.Instruction // program without labels
	code     bytes.Buffer       // one 16 character binary word per line
}

// New creates an assembler for program writing to output on Build
func New(program []hack.Instruction, output string) *Assembler {
	return &Assembler{
		program: program,
		output:  output,
	}
}

// ParseSource parses every non-empty line read from r
func ParseSource(r io.Reader) ([]hack.Instruction, error) {
	var out []hack.Instruction

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := hack.CleanLine(scanner.Text())
		if text == "" {
			continue
		}
		inst, err := hack.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("cannot parse line %d: %w", line, err)
		}
		out = append(out, inst)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// ParseLines parses generated instruction lines
func ParseLines(lines []string) ([]hack.Instruction, error) {
	return ParseSource(strings.NewReader(strings.Join(lines, "\n")))
}

// firstPass binds every label to the address of the instruction after it
func firstPass(program []hack.Instruction) ([]hack.Instruction, *SymbolTable, error) {
	symbols := NewSymbolTable()
	commands := make([]hack.Instruction, 0, len(program))

	for _, inst := range program {
		if l, ok := inst.(hack.Label); ok {
			if err := symbols.Bind(l.Symbol, len(commands)); err != nil {
				return nil, nil, err
			}
			continue
		}
		commands = append(commands, inst)
	}

	return commands, symbols, nil
}

// Link resolves every symbol and returns the executable program, in which all
// A-instructions hold constants
func Link(program []hack.Instruction) ([]hack.Instruction, error) {
	commands, symbols, err := firstPass(program)
	if err != nil {
		return nil, err
	}

	linked := make([]hack.Instruction, len(commands))
	for i, inst := range commands {
		if a, ok := inst.(hack.AInstruction); ok && !a.IsConstant() {
			inst = hack.AInstruction{Symbol: strconv.Itoa(symbols.Address(a.Symbol))}
		}
		linked[i] = inst
	}

	return linked, nil
}

// Generate runs both passes and encodes the program
func (a *Assembler) Generate() error {
	commands, symbols, err := firstPass(a.program)
	if err != nil {
		return err
	}
	a.commands = commands
	a.symbols = symbols
	a.code.Reset()

	for _, inst := range a.commands {
		word, err := a.encode(inst)
		if err != nil {
			return err
		}
		a.code.WriteString(word + "\n")
	}

	return nil
}

// encode returns the 16-bit binary word of inst
func (a *Assembler) encode(inst hack.Instruction) (string, error) {
	switch in := inst.(type) {
	case hack.AInstruction:
		value := 0
		if in.IsConstant() {
			value, _ = strconv.Atoi(in.Symbol)
		} else {
			value = a.symbols.Address(in.Symbol)
		}
		return fmt.Sprintf("%016b", value), nil
	case hack.CInstruction:
		return EncodeC(in), nil
	default:
		return "", fmt.Errorf("cannot encode %v", inst)
	}
}

// EncodeC returns the binary word of a C-instruction
func EncodeC(c hack.CInstruction) string {
	dest := []byte("000")
	for i, r := range []byte("ADM") {
		if c.Stores(r) {
			dest[i] = '1'
		}
	}
	return "111" + hack.CompCodes[c.Comp] + string(dest) + hack.JumpCodes[c.Jump]
}

// GetCode returns the binary program
func (a *Assembler) GetCode() string {
	return a.code.String()
}

// Symbols returns the symbol table built by Generate
func (a *Assembler) Symbols() *SymbolTable {
	return a.symbols
}

// Build writes the binary program to the output file
func (a *Assembler) Build() error {
	if err := os.WriteFile(a.output, a.code.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write binary file: %v", err)
	}
	return nil
}
