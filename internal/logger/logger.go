package logger

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init installs the process-wide logger. Verbose runs log everything down to
// debug with the caller location, otherwise only warnings and errors show.
func Init(verbose, noColor bool) {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller: verbose,
		Prefix:       "HACKVM",
		Level:        level,
	})

	profile := termenv.ANSI256
	if noColor {
		profile = termenv.Ascii
	}
	logger.SetColorProfile(profile)

	log.SetDefault(logger)
}
