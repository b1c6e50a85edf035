package translator

import (
	"context"
	"errors"
	"fmt"
	"hackvm/pkg/assembler"
	"hackvm/pkg/codegen"
	"hackvm/pkg/color"
	"hackvm/pkg/emulator"
	"hackvm/pkg/hack"
	"hackvm/pkg/lexer"
	"hackvm/pkg/parser"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	SourceExt   = ".vm"
	AssemblyExt = ".asm"
	BinaryExt   = ".hack"
	EntryUnit   = "Sys"
)

var ErrNoSources = errors.New("no .vm files found")

type Translator struct {
	Help       bool   // Show help message
	Verbose    bool   // Enable verbose output
	NoColor    bool   // Disable colored output
	Bootstrap  bool   // Force the bootstrap prologue
	Assemble   bool   // Also write the .hack binary
	Run        bool   // Run the result on the emulator
	Steps      int    // Emulator step budget
	Dump       string // Memory cells printed after emulation, e.g. "0,256-260"
	Jobs       int    // Max units translated in parallel (0 = unlimited)
	SourcePath string // .vm file or directory of .vm files
	OutputFile string // Path to the .asm file, derived from SourcePath when empty
}

// Translate reads the sources, translates them to assembly and writes the
// .asm file. Depending on the options the result is also assembled and run.
func (opts *Translator) Translate() error {
	log.Info("Processing", "path", opts.SourcePath)

	files, output, bootstrap, err := opts.resolve()
	if err != nil {
		return err
	}

	sources := make([]codegen.Source, 0, len(files))
	for _, file := range files {
		src, err := parseFile(file)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	program := codegen.NewProgram(sources,
		codegen.WithBootstrap(bootstrap),
		codegen.WithParallelism(opts.Jobs),
	)
	if err := program.Generate(context.Background()); err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	if opts.Verbose {
		fmt.Println(color.GreenText("\n=== Generated Assembly ==="))
		if len(program.Lines()) == 0 {
			fmt.Println(color.GrayText("No code generated."))
		} else {
			fmt.Print(Listing(program.Lines()))
		}
	}

	if err := os.WriteFile(output, []byte(program.GetCode()), 0644); err != nil {
		return fmt.Errorf("failed to write assembly file: %w", err)
	}
	log.Info("Wrote assembly", "file", output, "instructions", len(program.Lines()))

	if !opts.Assemble && !opts.Run {
		return nil
	}

	instructions, err := assembler.ParseLines(program.Lines())
	if err != nil {
		return fmt.Errorf("generated assembly is invalid: %w", err)
	}

	if opts.Assemble {
		binary := strings.TrimSuffix(output, filepath.Ext(output)) + BinaryExt
		asm := assembler.New(instructions, binary)
		if err := asm.Generate(); err != nil {
			return fmt.Errorf("assembly failed: %w", err)
		}
		if err := asm.Build(); err != nil {
			return fmt.Errorf("assembly build failed: %w", err)
		}
		log.Info("Wrote binary", "file", binary)
	}

	if opts.Run {
		return opts.emulate(instructions)
	}

	return nil
}

// resolve lists the source files in translation order and derives the output
// path and whether a bootstrap is emitted
func (opts *Translator) resolve() ([]string, string, bool, error) {
	info, err := os.Stat(opts.SourcePath)
	if err != nil {
		return nil, "", false, fmt.Errorf("cannot read source: %w", err)
	}

	var (
		files     []string
		output    string
		bootstrap = opts.Bootstrap
	)

	if info.IsDir() {
		entries, err := os.ReadDir(opts.SourcePath)
		if err != nil {
			return nil, "", false, fmt.Errorf("cannot read directory: %w", err)
		}
		// ReadDir returns entries sorted by name
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != SourceExt {
				continue
			}
			files = append(files, filepath.Join(opts.SourcePath, e.Name()))
			if codegen.UnitName(e.Name()) == EntryUnit {
				bootstrap = true
			}
		}
		if len(files) == 0 {
			return nil, "", false, fmt.Errorf("%w in %s", ErrNoSources, opts.SourcePath)
		}
		dir := filepath.Clean(opts.SourcePath)
		output = filepath.Join(dir, filepath.Base(dir)+AssemblyExt)
	} else {
		files = []string{opts.SourcePath}
		output = strings.TrimSuffix(opts.SourcePath, filepath.Ext(opts.SourcePath)) + AssemblyExt
	}

	if opts.OutputFile != "" {
		output = opts.OutputFile
	}

	log.Debug("Resolved sources", "files", len(files), "output", output, "bootstrap", bootstrap)
	return files, output, bootstrap, nil
}

// parseFile parses one source file into a translation unit. Syntax errors are
// printed and only the first one is reported.
func parseFile(file string) (codegen.Source, error) {
	input, err := os.ReadFile(file)
	if err != nil {
		return codegen.Source{}, fmt.Errorf("failed to read file %s: %w", file, err)
	}

	p := parser.NewParser(lexer.NewLexer(string(input)))
	p.Parse()

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Println(color.BrightRedText("=== Syntax Errors in " + file + " ==="))
		fmt.Println(errs[0])
		return codegen.Source{}, fmt.Errorf("parsing %s failed with %d errors", file, len(errs))
	}

	return codegen.Source{Name: codegen.UnitName(file), Commands: p.Commands()}, nil
}

// emulate runs the program until it halts or the step budget is spent, then
// prints the requested memory cells
func (opts *Translator) emulate(instructions []hack.Instruction) error {
	cells, err := ParseCells(opts.Dump)
	if err != nil {
		return err
	}

	linked, err := assembler.Link(instructions)
	if err != nil {
		return fmt.Errorf("link failed: %w", err)
	}

	emu, err := emulator.NewEmulator(linked, emulator.WithMaxSteps(opts.Steps))
	if err != nil {
		return fmt.Errorf("emulator load failed: %w", err)
	}

	err = emu.RunUntilHalt()
	switch {
	case errors.Is(err, emulator.ErrMaxStepsExceeded):
		log.Warn("Step budget spent before halt", "steps", emu.Steps())
	case err != nil:
		return fmt.Errorf("emulation failed: %w", err)
	default:
		log.Info("Program halted", "steps", emu.Steps())
	}

	fmt.Println(color.GreenText("\n=== Memory ==="))
	for _, addr := range cells {
		fmt.Printf("%s = %d\n", color.CyanText(fmt.Sprintf("M[%d]", addr)), emu.Peek(addr))
	}

	return nil
}

// ParseCells parses a comma separated list of addresses and inclusive ranges
// such as "0,256-260"
func ParseCells(list string) ([]int, error) {
	var cells []int

	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(field, "-")
		first, err := cellAddress(lo)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			if last, err = cellAddress(hi); err != nil {
				return nil, err
			}
		}
		if last < first {
			return nil, fmt.Errorf("invalid memory range %q", field)
		}

		for addr := first; addr <= last; addr++ {
			cells = append(cells, addr)
		}
	}

	return cells, nil
}

func cellAddress(s string) (int, error) {
	addr, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || addr < 0 || addr >= emulator.MemorySize {
		return 0, fmt.Errorf("invalid memory address %q", s)
	}
	return addr, nil
}

// Listing formats assembly lines with ROM addresses. Labels take no address.
func Listing(lines []string) string {
	var b strings.Builder

	rom := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "(") {
			b.WriteString(color.MagentaText(line) + "\n")
			continue
		}
		text := line
		if strings.HasPrefix(line, "@") {
			text = color.YellowText(line)
		}
		fmt.Fprintf(&b, "%s  %s\n", color.CyanText(fmt.Sprintf("%5d", rom)), text)
		rom++
	}

	return b.String()
}
