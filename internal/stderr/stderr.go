//go:build !windows

// Package stderr captures output that C audio libraries (ALSA, PulseAudio)
// write straight to file descriptor 2, which would otherwise tear the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
)

// Start redirects fd 2 into a pipe and hands every non-empty line to sink.
// A nil sink logs lines at warn level. Must run before the audio device opens.
// On error the program keeps writing to the real stderr.
func Start(sink func(line string)) error {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead != nil {
		return nil
	}
	if sink == nil {
		sink = LogLine
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr, pipeRead, pipeWrite = orig, r, w
	done = make(chan struct{})
	go pump(r, sink, done)
	return nil
}

func pump(r *os.File, sink func(string), done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			sink(line)
		}
	}
}

// LogLine records a captured line in the application log.
func LogLine(line string) {
	log.Warn().Str("source", "stderr").Msg(line)
}

// Stop restores fd 2 and waits for pending lines to reach the sink.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead == nil {
		return
	}
	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	pipeWrite.Close()
	<-done
	pipeRead.Close()

	origStderr, pipeRead, pipeWrite = -1, nil, nil
}
