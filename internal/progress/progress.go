// Package progress is a minimal terminal spinner used only at the CLI
// edge (cmd/srcpkg). Core packages never import this package: progress
// reporting is pure presentation and holds no locks over core state.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var frames = []rune{'|', '/', '-', '\\'}

// Spinner renders a rotating glyph plus a status message to an io.Writer
// (typically os.Stderr) until Stop is called.
type Spinner struct {
	out     io.Writer
	mu      sync.Mutex
	message string
	stop    chan struct{}
	done    chan struct{}
}

// New starts a spinner writing to out with the given initial message.
func New(out io.Writer, message string) *Spinner {
	s := &Spinner{out: out, message: message, stop: make(chan struct{}), done: make(chan struct{})}
	go s.run()
	return s
}

// SetMessage updates the status text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

func (s *Spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-s.stop:
			fmt.Fprint(s.out, "\r\033[K")
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()
			fmt.Fprintf(s.out, "\r%c %s", frames[i%len(frames)], msg)
			i++
		}
	}
}

// Stop halts the spinner and clears the line.
func (s *Spinner) Stop() {
	close(s.stop)
	<-s.done
}
