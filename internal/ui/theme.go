// Package ui holds the terminal presentation state shared by the CLI: the
// active color theme and terminal detection.
package ui

import (
	"io"
	"os"
	"sync/atomic"
)

// Theme is a set of ANSI escape sequences, one per role in the output.
type Theme struct {
	Name string
	// Index highlights the Fibonacci index n.
	Index string
	// Value highlights computed values.
	Value string
	// Detail is used for metadata such as digit counts and durations.
	Detail string
	Warning string
	Error   string
	Bold    string
	Reset   string
}

var (
	// ColorTheme is the default theme for terminals.
	ColorTheme = Theme{
		Name:    "color",
		Index:   "\033[38;5;141m",
		Value:   "\033[38;5;82m",
		Detail:  "\033[38;5;245m",
		Warning: "\033[38;5;220m",
		Error:   "\033[38;5;196m",
		Bold:    "\033[1m",
		Reset:   "\033[0m",
	}

	// PlainTheme emits no escape sequences.
	PlainTheme = Theme{Name: "plain"}
)

var current atomic.Pointer[Theme]

func init() {
	current.Store(&ColorTheme)
}

// Current returns the active theme.
func Current() Theme {
	return *current.Load()
}

// SetTheme replaces the active theme.
func SetTheme(t Theme) {
	current.Store(&t)
}

// InitTheme selects PlainTheme when noColor is set, when the NO_COLOR
// environment variable exists (https://no-color.org/), or when out is not a
// terminal. Otherwise ColorTheme is used.
func InitTheme(noColor bool, out io.Writer) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set || !IsTerminal(out) {
		SetTheme(PlainTheme)
		return
	}
	SetTheme(ColorTheme)
}
