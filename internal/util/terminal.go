package util

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether the file descriptor refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// TerminalWidth returns the column count of the terminal behind stderr,
// where progress and log output go, or 80 when stderr is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
