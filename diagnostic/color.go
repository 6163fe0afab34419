// Copyright © 2024 The Brook authors

package diagnostic

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// ParseColorMode parses the values accepted by the --color flag.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

type palette struct {
	bold       string
	boldRed    string
	boldYellow string
	boldBlue   string
	boldCyan   string
	reset      string
}

var ansiPalette = palette{
	bold:       "\033[1m",
	boldRed:    "\033[1;31m",
	boldYellow: "\033[1;33m",
	boldBlue:   "\033[1;34m",
	boldCyan:   "\033[1;36m",
	reset:      "\033[0m",
}

var noPalette = palette{}

func choosePalette(mode ColorMode, w *os.File) palette {
	switch mode {
	case ColorAlways:
		return ansiPalette
	case ColorNever:
		return noPalette
	}
	if os.Getenv("NO_COLOR") != "" || !isTerminal(w) {
		return noPalette
	}
	return ansiPalette
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
