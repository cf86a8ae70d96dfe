// Package logger configures the zerolog logger used across awsdrill. The
// terminal is owned by the TUI, so log output always goes to a file; stderr
// would corrupt the alternate screen.
package logger

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a JSON file logger. When path is empty the log lands next to
// the state directory default (~/.awsdrill/awsdrill.log); if the file cannot
// be opened logging is disabled rather than written to the terminal.
func New(path string) zerolog.Logger {
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".awsdrill", "awsdrill.log")
		}
	}
	if path == "" {
		return zerolog.Nop()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop()
	}
	logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop()
	}

	return zerolog.New(logFile).With().
		Str("role", "tui").
		Timestamp().
		Logger()
}
