package translator_test

import (
	"errors"
	"hackvm/internal/translator"
	"hackvm/pkg/color"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func init() {
	color.EnableColor(false)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected output %s: %v", path, err)
	}
	return string(data)
}

func TestTranslateFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "SimpleAdd.vm")
	writeFile(t, src, "push constant 7\npush constant 8\nadd\n")

	opts := translator.Translator{SourcePath: src, Run: true, Steps: 1000, Dump: "0,256"}
	if err := opts.Translate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	code := readFile(t, filepath.Join(dir, "SimpleAdd.asm"))
	if strings.HasPrefix(code, "@256") {
		t.Errorf("single file without Sys.vm should not get a bootstrap")
	}
	if !strings.HasPrefix(code, "@7\nD=A\n") {
		t.Errorf("unexpected start of assembly:\n%s", code)
	}
}

func TestTranslateDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "FibonacciElement")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "Main.vm"), `
function Main.fibonacci 0
push argument 0
push constant 2
lt
if-goto IF_TRUE
goto IF_FALSE
label IF_TRUE
push argument 0
return
label IF_FALSE
push argument 0
push constant 2
sub
call Main.fibonacci 1
push argument 0
push constant 1
sub
call Main.fibonacci 1
add
return
`)
	writeFile(t, filepath.Join(dir, "Sys.vm"), `
function Sys.init 0
push constant 4
call Main.fibonacci 1
label WHILE
goto WHILE
`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a source")

	opts := translator.Translator{SourcePath: dir, Assemble: true, Run: true, Steps: 10000, Dump: "0,261", Jobs: 2}
	if err := opts.Translate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	code := readFile(t, filepath.Join(dir, "FibonacciElement.asm"))
	if !strings.HasPrefix(code, "@256\nD=A\n@SP\nM=D\n") {
		t.Errorf("directory with Sys.vm should start with the bootstrap")
	}

	binary := readFile(t, filepath.Join(dir, "FibonacciElement.hack"))
	for i, word := range strings.Split(strings.TrimSuffix(binary, "\n"), "\n") {
		if len(word) != 16 || strings.Trim(word, "01") != "" {
			t.Fatalf("line %d is not a binary word: %q", i+1, word)
		}
	}
}

func TestTranslateOutputFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Loop.vm")
	out := filepath.Join(dir, "custom.asm")
	writeFile(t, src, "label LOOP\ngoto LOOP\n")

	opts := translator.Translator{SourcePath: src, OutputFile: out, Bootstrap: true}
	if err := opts.Translate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if code := readFile(t, out); !strings.HasPrefix(code, "@256\n") {
		t.Errorf("forced bootstrap missing")
	}
	if _, err := os.Stat(filepath.Join(dir, "Loop.asm")); err == nil {
		t.Errorf("default output written despite override")
	}
}

func TestTranslateErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "Bad.vm")
	writeFile(t, bad, "push constant 1\npush nowhere 2\n")
	opts := translator.Translator{SourcePath: bad}
	if err := opts.Translate(); err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Errorf("expected parse failure, got %v", err)
	}

	untranslatable := filepath.Join(dir, "Pop.vm")
	writeFile(t, untranslatable, "pop constant 1\n")
	opts = translator.Translator{SourcePath: untranslatable}
	if err := opts.Translate(); err == nil || !strings.Contains(err.Error(), "translation failed") {
		t.Errorf("expected translation failure, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Pop.asm")); err == nil {
		t.Errorf("assembly written for a failed translation")
	}

	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0755); err != nil {
		t.Fatal(err)
	}
	opts = translator.Translator{SourcePath: empty}
	if err := opts.Translate(); !errors.Is(err, translator.ErrNoSources) {
		t.Errorf("expected ErrNoSources, got %v", err)
	}

	opts = translator.Translator{SourcePath: filepath.Join(dir, "missing.vm")}
	if err := opts.Translate(); err == nil {
		t.Errorf("expected error for a missing source")
	}
}

func TestParseCells(t *testing.T) {
	tests := []struct {
		input string
		want  []int
		err   bool
	}{
		{"", nil, false},
		{"0", []int{0}, false},
		{"0, 256-259,5", []int{0, 256, 257, 258, 259, 5}, false},
		{"3-3", []int{3}, false},
		{"5-3", nil, true},
		{"x", nil, true},
		{"24576", nil, true},
		{"-1", nil, true},
	}

	for _, test := range tests {
		got, err := translator.ParseCells(test.input)
		if test.err {
			if err == nil {
				t.Errorf("ParseCells(%q): expected error, got %v", test.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCells(%q): unexpected error %v", test.input, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("ParseCells(%q) = %v, want %v", test.input, got, test.want)
		}
	}
}

func TestListing(t *testing.T) {
	got := translator.Listing([]string{"(LOOP)", "@LOOP", "0;JMP"})
	want := "(LOOP)\n    0  @LOOP\n    1  0;JMP\n"
	if got != want {
		t.Errorf("got\n%q\nwant\n%q", got, want)
	}
}
