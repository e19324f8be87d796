// Package terminal provides the small amount of terminal introspection
// the dream display needs: whether stdout is a tty, how big it is, and
// which color profile it can show.
package terminal

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Size is the terminal dimensions in character cells.
type Size struct {
	Cols int
	Rows int
}

// Capabilities summarizes the current terminal session.
type Capabilities struct {
	IsTTY   bool
	Size    Size
	Profile termenv.Profile
}

// Detect inspects stdout and the environment. Safe to call more than
// once; detection is cheap and stateless.
func Detect() Capabilities {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	return Capabilities{
		IsTTY:   tty,
		Size:    GetSize(),
		Profile: termenv.ColorProfile(),
	}
}

// GetSize returns the terminal dimensions. Strategies in order:
//  1. Size query on stdout, then stderr (in case stdout is redirected).
//  2. COLUMNS/LINES environment variables.
//  3. Fallback to 80x24.
func GetSize() Size {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if w, h, err := term.GetSize(f.Fd()); err == nil && w > 0 && h > 0 {
			return Size{Cols: w, Rows: h}
		}
	}
	return sizeFromEnv()
}

// sizeFromEnv reads COLUMNS/LINES, falling back to 80x24.
func sizeFromEnv() Size {
	s := Size{Cols: 80, Rows: 24}
	if v, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && v > 0 {
		s.Cols = v
	}
	if v, err := strconv.Atoi(os.Getenv("LINES")); err == nil && v > 0 {
		s.Rows = v
	}
	return s
}
