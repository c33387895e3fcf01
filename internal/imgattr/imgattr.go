// Package imgattr implements the functionality of the program, the CLI in package cmd is simply the
// entrypoint to exported functions and methods in this package.
package imgattr

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.followtheprocess.codes/log"
)

// App represents the imgattr program.
type App struct {
	stdin       io.Reader   // Interactive prompts read from here
	stdout      io.Writer   // Normal program output is written here
	stderr      io.Writer   // Logs, errors and prompts are written here
	logger      *log.Logger // The logger for the application
	picker      picker      // Asks the user which formats to export
	version     string      // The app version
	interactive bool        // Whether stdin is a terminal we can prompt on
}

// New returns a new [App].
func New(debug bool, version string, stdin io.Reader, stdout, stderr io.Writer) App {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}

	logger := log.New(stderr, log.WithLevel(level))

	return App{
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		logger:      logger,
		picker:      promptFormats,
		version:     version,
		interactive: isTerminal(stdin),
	}
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
