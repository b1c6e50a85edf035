package codegen_test

import (
	"context"
	"hackvm/pkg/assembler"
	"hackvm/pkg/codegen"
	"hackvm/pkg/emulator"
	"hackvm/pkg/parser"
	"strconv"
	"strings"
	"testing"
)

// file is one VM source unit of a test program
type file struct {
	name string
	src  string
}

// translate parses and translates files into assembly lines
func translate(t *testing.T, bootstrap bool, files ...file) []string {
	t.Helper()

	sources := make([]codegen.Source, 0, len(files))
	for _, f := range files {
		commands, err := parser.ParseString(f.src)
		if err != nil {
			t.Fatalf("%s: parse error: %v", f.name, err)
		}
		sources = append(sources, codegen.Source{Name: f.name, Commands: commands})
	}

	p := codegen.NewProgram(sources, codegen.WithBootstrap(bootstrap))
	if err := p.Generate(context.Background()); err != nil {
		t.Fatalf("translation error: %v", err)
	}

	return p.Lines()
}

// execute assembles lines and runs them for at most steps instructions
func execute(t *testing.T, lines []string, steps int, memory map[int]int16) *emulator.Emulator {
	t.Helper()

	program, err := assembler.ParseLines(lines)
	if err != nil {
		t.Fatalf("generated code does not parse: %v", err)
	}
	linked, err := assembler.Link(program)
	if err != nil {
		t.Fatalf("generated code does not link: %v", err)
	}
	emu, err := emulator.NewEmulator(linked, emulator.WithMemory(memory))
	if err != nil {
		t.Fatalf("generated code does not load: %v", err)
	}
	if err := emu.Run(steps); err != nil {
		t.Fatalf("emulation error: %v", err)
	}

	return emu
}

// run translates a single unit named Test without bootstrap and executes it
// with the stack at 256
func run(t *testing.T, src string, steps int) *emulator.Emulator {
	t.Helper()
	return execute(t, translate(t, false, file{"Test", src}), steps, map[int]int16{0: 256})
}

// expectMemory checks memory cells against expected values
func expectMemory(t *testing.T, name string, emu *emulator.Emulator, expected map[int]int16) {
	t.Helper()
	for addr, want := range expected {
		if got := emu.Peek(addr); got != want {
			t.Errorf("%s: M[%d]=%d instead of %d", name, addr, got, want)
		}
	}
}

// pushValue returns VM code pushing any 16-bit value
func pushValue(v int16) string {
	switch {
	case v >= 0:
		return "push constant " + strconv.Itoa(int(v)) + "\n"
	case v == -32768:
		return "push constant 32767\nneg\npush constant 1\nsub\n"
	default:
		return "push constant " + strconv.Itoa(-int(v)) + "\nneg\n"
	}
}

// labels returns the label declarations in lines
func labels(lines []string) []string {
	var out []string
	for _, l := range lines {
		if strings.HasPrefix(l, "(") {
			out = append(out, strings.Trim(l, "()"))
		}
	}
	return out
}
