package main

import (
	"flag"
	"fmt"
	"hackvm/internal/logger"
	"hackvm/internal/translator"
	"hackvm/pkg/color"
	"os"

	"github.com/charmbracelet/log"
)

// Main entry point for the VM translator.
func main() {
	options := translator.Translator{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.BoolVar(&options.Bootstrap, "b", false, "Emit bootstrap code (implied for directories with Sys.vm)")
	flag.BoolVar(&options.Assemble, "c", false, "Assemble to a .hack binary")
	flag.BoolVar(&options.Run, "r", false, "Run on the emulator")
	flag.IntVar(&options.Steps, "s", 1000000, "Emulator step budget")
	flag.StringVar(&options.Dump, "d", "0", "Memory cells to print after running (e.g. 0,256-260)")
	flag.IntVar(&options.Jobs, "j", 0, "Max files translated in parallel (0 = unlimited)")
	flag.StringVar(&options.OutputFile, "o", "", "Output .asm file (default derived from the input)")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <file.vm | directory>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No input provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.SourcePath = args[0]

	err := options.Translate()
	if err != nil {
		log.Fatal("Translation failed", "error", err)
	}
}
