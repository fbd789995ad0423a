// Package util holds small helpers shared by the command line and the interface.
package util

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pplay-cli/pplay/filesystem"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// Quantify formats count with the matching noun, e.g. "1 file" or "3 files".
func Quantify(count int, singular, plural string) string {
	noun := plural
	if count == 1 {
		noun = singular
	}
	return fmt.Sprintf("%d %s", count, noun)
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// TerminalSize reports the size of the terminal attached to stdout.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// PrintErasable writes msg on the current line and returns a func that blanks it again.
func PrintErasable(msg string) (erase func()) {
	fmt.Fprint(os.Stdout, "\r"+msg)
	return func() {
		fmt.Fprint(os.Stdout, "\r"+strings.Repeat(" ", len(msg))+"\r")
	}
}

// Clamp bounds value to [lo, hi].
func Clamp[T constraints.Ordered](value, lo, hi T) T {
	switch {
	case value < lo:
		return lo
	case value > hi:
		return hi
	default:
		return value
	}
}

// Delete removes path, recursing into directories.
func Delete(path string) error {
	fs := filesystem.API()
	if _, err := fs.Stat(path); err != nil {
		return err
	}
	return fs.RemoveAll(path)
}
