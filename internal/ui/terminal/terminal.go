package terminal

import (
	"fmt"
	"io"

	"golang.org/x/term"
)

// Escape sequences for the alternate screen and cursor visibility
const (
	EnterAltScreen = "\033[?1049h"
	ExitAltScreen  = "\033[?1049l"
	HideCursor     = "\033[?25l"
	ShowCursor     = "\033[?25h"
)

// Mode abstracts the terminal mode switch so callers can be tested without a tty
type Mode interface {
	MakeRaw() (restore func() error, err error)
}

// FdMode puts the terminal behind a file descriptor into raw mode
type FdMode int

func (fd FdMode) MakeRaw() (func() error, error) {
	if !term.IsTerminal(int(fd)) {
		return nil, fmt.Errorf("file descriptor %d is not a terminal", int(fd))
	}
	state, err := term.MakeRaw(int(fd))
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	return func() error { return term.Restore(int(fd), state) }, nil
}

// WithRawMode runs fn with the terminal in raw mode on the alternate screen
// and the cursor hidden. The terminal is restored when fn returns, fails or
// panics; a panic is re-raised after the restore.
func WithRawMode(mode Mode, out io.Writer, fn func() error) (err error) {
	restore, err := mode.MakeRaw()
	if err != nil {
		return err
	}

	_, _ = io.WriteString(out, EnterAltScreen+HideCursor)

	defer func() {
		_, _ = io.WriteString(out, ShowCursor+ExitAltScreen)
		restoreErr := restore()
		if r := recover(); r != nil {
			panic(r)
		}
		if err == nil && restoreErr != nil {
			err = fmt.Errorf("restore terminal: %w", restoreErr)
		}
	}()

	return fn()
}

// IsTerminal reports whether fd refers to a terminal
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}
