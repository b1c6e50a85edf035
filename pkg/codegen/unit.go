package codegen

import (
	"bytes"
	"fmt"
	"hackvm/pkg/command"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Unit translates the commands of one source file in order
type Unit struct {
	name     string            // unit name used for static symbols
	commands []command.Command // commands in program order
	base     int               // command index of the first command

	i        int          // current command index
	function string       // most recent function definition
	text     bytes.Buffer // generated instructions, one per line
	lines    []string     // generated instructions
}

// NewUnit creates a unit whose first command has index base
func NewUnit(name string, commands []command.Command, base int) *Unit {
	return &Unit{
		name:     name,
		commands: commands,
		base:     base,
		i:        base,
	}
}

// Name returns the unit name
func (u *Unit) Name() string {
	return u.name
}

// Len returns the number of commands in the unit
func (u *Unit) Len() int {
	return len(u.commands)
}

// Generate translates every command. On failure nothing is kept.
func (u *Unit) Generate() error {
	u.reset()

	for _, cmd := range u.commands {
		ctx := Context{Unit: u.name, Function: u.function, Index: u.i}

		code, err := Translate(cmd, ctx)
		if err != nil {
			u.reset()
			return fmt.Errorf("%s: command %d (%s): %w", u.name, ctx.Index, cmd, err)
		}

		if fn, ok := cmd.(command.FunctionDefinition); ok {
			u.function = fn.FunctionName()
		}

		for _, line := range code {
			u.addText(line)
		}
		u.i++
	}

	log.Debug("Translated unit", "unit", u, "commands", len(u.commands), "instructions", len(u.lines))
	return nil
}

// Lines returns the generated instructions
func (u *Unit) Lines() []string {
	return u.lines
}

// GetCode returns the generated instructions as text
func (u *Unit) GetCode() string {
	return u.text.String()
}

// addText appends one instruction
func (u *Unit) addText(instruction string) {
	u.lines = append(u.lines, instruction)
	u.text.WriteString(instruction + "\n")
}

func (u *Unit) reset() {
	u.i = u.base
	u.function = ""
	u.lines = nil
	u.text.Reset()
}

// String returns a short description used in logs
func (u *Unit) String() string {
	return fmt.Sprintf("%s[%d..%d)", u.name, u.base, u.base+len(u.commands))
}

// UnitName derives the unit name from a file name: the base name without
// extension
func UnitName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
