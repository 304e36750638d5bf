// Package logging configures the global zerolog logger.
//
// A TUI owns the terminal, so log output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFile = "sift/sift.log"

// ParseLevel converts a config level name. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// DefaultPath returns the log file under the XDG state directory.
func DefaultPath() (string, error) {
	return xdg.StateFile(logFile)
}

// Setup points the global logger at path (DefaultPath when empty) with the
// given level. The returned closer flushes and closes the file.
func Setup(level, path string) (io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	Attach(f, lvl)
	return f, nil
}

// Attach routes the global logger to w.
func Attach(w io.Writer, lvl zerolog.Level) {
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339
}

// Discard silences the global logger.
func Discard() {
	log.Logger = zerolog.Nop()
}
