package console

import (
	"os"

	"golang.org/x/term"
)

// ColorEnabled reports whether output to f should be styled.
// NO_COLOR disables styling regardless of the terminal.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
