package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the public logger instance accessible from all packages.
// Until Initialize runs it only reports warnings and errors to stderr.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Level:  log.WarnLevel,
	Prefix: "attms",
})

// Initialize sets up the logger based on the debug flag.
// ATTMS_DEBUG=1 enables debug output as well.
func Initialize(debug bool) {
	if os.Getenv("ATTMS_DEBUG") == "1" {
		debug = true
	}

	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "attms",
		ReportTimestamp: debug,
		TimeFormat:      "15:04:05",
	})
}

// Discard silences all logging, for TUI mode and tests
func Discard() {
	Logger = log.New(io.Discard)
}

// SetOutput redirects the logger, keeping its level and formatting
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}
