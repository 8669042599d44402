// Package logger configures the process-wide log used by the assembler for
// diagnostics and verbose tracing.
package logger

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init sets up the default logger. Verbose mode enables the Debug-level
// assembly traces (registers found, labels replaced, records written).
func Init(verbose, noColor bool) {
	log.SetDefault(log.NewWithOptions(os.Stderr,
		log.Options{
			ReportTimestamp: false,
			TimeFormat:      time.RFC3339,
			Prefix:          "asm64",
		}))

	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}
