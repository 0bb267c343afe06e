package util

import (
	"io"

	"golang.org/x/term"
)

// DefaultWidth is the width assumed when the output is not a terminal
const DefaultWidth = 80

// Terminal abstracts the terminal queries argtree needs
type Terminal interface {
	IsTerminal(fd int) bool
	GetSize(fd int) (width, height int, err error)
}

type defaultTerminal struct{}

func (defaultTerminal) IsTerminal(fd int) bool { return term.IsTerminal(fd) }

func (defaultTerminal) GetSize(fd int) (int, int, error) { return term.GetSize(fd) }

// Term is the Terminal used by IsTerminal and Width
var Term Terminal = defaultTerminal{}

type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether w is attached to a terminal. Writers without a file descriptor,
// such as buffers, never are.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}

	return Term.IsTerminal(int(f.Fd()))
}

// Width returns the column count of the terminal w is attached to, or DefaultWidth
func Width(w io.Writer) int {
	if !IsTerminal(w) {
		return DefaultWidth
	}

	width, _, err := Term.GetSize(int(w.(fder).Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return width
}
