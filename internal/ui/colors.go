package ui

import (
	"os"

	"github.com/fatih/color"
)

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code from the current theme.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// Highlight renders s in bold green, or unchanged when color is disabled.
func Highlight(s string) string {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return s
	}
	c := color.New(color.Bold, color.FgHiGreen)
	c.EnableColor()
	return c.Sprint(s)
}

func noColorEnv() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}
