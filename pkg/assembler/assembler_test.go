package assembler_test

import (
	"hackvm/pkg/assembler"
	"hackvm/pkg/hack"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const maxProgram = `// Computes R2 = max(R0, R1)
   @R0
   D=M              // D = first number
   @R1
   D=D-M            // D = first number - second number
   @OUTPUT_FIRST
   D;JGT            // if D>0 (first is greater) goto output_first
   @R1
   D=M              // D = second number
   @OUTPUT_D
   0;JMP            // goto output_d
(OUTPUT_FIRST)
   @R0
   D=M              // D = first number
(OUTPUT_D)
   @R2
   M=D              // M[2] = D (greatest number)
(INFINITE_LOOP)
   @INFINITE_LOOP
   0;JMP            // infinite loop
`

func parse(t *testing.T, src string) []hack.Instruction {
	t.Helper()
	program, err := assembler.ParseSource(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return program
}

func TestGenerateAdd(t *testing.T) {
	program := parse(t, "@2\nD=A\n@3\nD=D+A\n@0\nM=D\n")

	a := assembler.New(program, "")
	if err := a.Generate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"0000000000000010",
		"1110110000010000",
		"0000000000000011",
		"1110000010010000",
		"0000000000000000",
		"1110001100001000",
	}, "\n") + "\n"

	if got := a.GetCode(); got != want {
		t.Errorf("unexpected binary:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeC(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"M=1", "1110111111001000"},
		{"0;JMP", "1110101010000111"},
		{"AM=M-1", "1111110010101000"},
		{"D;JGT", "1110001100000001"},
		{"AMD=D|M;JNE", "1111010101111101"},
	}

	for _, test := range tests {
		inst, err := hack.Parse(test.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", test.input, err)
		}
		if got := assembler.EncodeC(inst.(hack.CInstruction)); got != test.want {
			t.Errorf("EncodeC(%q) = %s, want %s", test.input, got, test.want)
		}
	}
}

func TestLabelsAndVariables(t *testing.T) {
	program := parse(t, maxProgram+"@i\nM=1\n@sum\nM=0\n@i\nD=M\n")

	a := assembler.New(program, "")
	if err := a.Generate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	symbols := a.Symbols()
	expected := map[string]int{
		"OUTPUT_FIRST":  10,
		"OUTPUT_D":      12,
		"INFINITE_LOOP": 14,
		"i":             16,
		"sum":           17,
		"SCREEN":        16384,
		"R15":           15,
	}
	for name, addr := range expected {
		got, ok := symbols.Lookup(name)
		if !ok || got != addr {
			t.Errorf("symbol %s: got %d (bound %v), want %d", name, got, ok, addr)
		}
	}
}

func TestLink(t *testing.T) {
	linked, err := assembler.Link(parse(t, "(START)\n@x\nM=0\n@START\n0;JMP\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []hack.Instruction{
		hack.AInstruction{Symbol: "16"},
		hack.CInstruction{Dest: "M", Comp: "0"},
		hack.AInstruction{Symbol: "0"},
		hack.CInstruction{Comp: "0", Jump: "JMP"},
	}
	if !reflect.DeepEqual(linked, want) {
		t.Errorf("unexpected linked program %v", linked)
	}
}

func TestDuplicateLabel(t *testing.T) {
	if _, err := assembler.Link(parse(t, "(A)\n@0\n(A)\n")); err == nil {
		t.Errorf("expected duplicate label error")
	}
	if _, err := assembler.Link(parse(t, "(SP)\n")); err == nil {
		t.Errorf("expected predefined symbol clash error")
	}
}

func TestParseSourceError(t *testing.T) {
	src := `
           D=M              // D = second number
           @OUTPUT_D
           0;JMP            // goto output_d
        (OUTPUT_FIRST
           @R0
    `
	_, err := assembler.ParseSource(strings.NewReader(src))
	if err == nil || !strings.HasPrefix(err.Error(), "cannot parse line 5") {
		t.Errorf("expected line 5 error, got %v", err)
	}
}

func TestBuild(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Add.hack")
	a := assembler.New(parse(t, "@2\nD=A\n"), out)
	if err := a.Generate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.Build(); err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("cannot read output: %v", err)
	}
	if string(data) != "0000000000000010\n1110110000010000\n" {
		t.Errorf("unexpected file contents %q", data)
	}
}
