// Package spinner draws a one-line progress indicator while the demo waits
// on the network.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const interval = 80 * time.Millisecond

// IsTerminal reports whether w is a terminal. Anything other than an
// *os.File is treated as not a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Start displays an animated spinner with message on w and returns a
// function that stops it and clears the line. The stop function is safe to
// call more than once. When w is not a terminal nothing is drawn.
func Start(w io.Writer, message string) (stop func()) {
	if !IsTerminal(w) {
		return func() {}
	}
	return start(w, message)
}

func start(w io.Writer, message string) func() {
	done := make(chan struct{})
	cleared := make(chan struct{})
	blank := strings.Repeat(" ", runewidth.StringWidth(message)+2)

	go func() {
		defer close(cleared)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-done:
				fmt.Fprintf(w, "\r%s\r", blank) //nolint:errcheck
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], message) //nolint:errcheck
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-cleared
	}
}
