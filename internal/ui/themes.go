// Package ui holds the terminal color palette shared by the CLI, the REPL
// and the usage text. Escape sequences are built from fatih/color
// attributes, and color is disabled by the -no-color flag, by NO_COLOR, or
// when fatih/color detects that stdout is not a terminal.
package ui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Theme is a set of ANSI escape prefixes, one per semantic role.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// escape renders SGR attributes as an escape prefix.
func escape(attrs ...color.Attribute) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = strconv.Itoa(int(a))
	}
	return "\x1b[" + strings.Join(parts, ";") + "m"
}

var (
	// DarkTheme uses the bright palette, readable on dark backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   escape(color.FgHiBlue),
		Secondary: escape(color.FgHiBlack),
		Success:   escape(color.FgHiGreen),
		Warning:   escape(color.FgHiYellow),
		Error:     escape(color.FgHiRed),
		Info:      escape(color.FgHiMagenta),
		Bold:      escape(color.Bold),
		Underline: escape(color.Underline),
		Reset:     escape(color.Reset),
	}

	// LightTheme uses the normal-intensity palette for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   escape(color.FgBlue),
		Secondary: escape(color.FgBlack),
		Success:   escape(color.FgGreen),
		Warning:   escape(color.FgYellow),
		Error:     escape(color.FgRed),
		Info:      escape(color.FgMagenta),
		Bold:      escape(color.Bold),
		Underline: escape(color.Underline),
		Reset:     escape(color.Reset),
	}

	// NoColorTheme disables all color output.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name ("dark", "light" or "none"). Unknown
// names select the dark theme.
func SetTheme(name string) {
	switch name {
	case "light":
		SetCurrentTheme(LightTheme)
	case "none":
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme selects the dark theme unless noColor is true or fatih/color
// has disabled color (NO_COLOR set, dumb terminal, or output not a TTY).
// Disabling also turns off fatih/color globally.
func InitTheme(noColor bool) {
	if noColor || color.NoColor || noColorEnv() {
		color.NoColor = true
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
