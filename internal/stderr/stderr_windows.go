//go:build windows

// Package stderr is a no-op on Windows, where the audio stack does not
// write to the console.
package stderr

import "github.com/rs/zerolog/log"

// Start is a no-op on Windows.
func Start(func(line string)) error {
	return nil
}

// LogLine records a captured line in the application log.
func LogLine(line string) {
	log.Warn().Str("source", "stderr").Msg(line)
}

// Stop is a no-op on Windows.
func Stop() {}
