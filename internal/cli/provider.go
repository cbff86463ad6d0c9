package cli

import apperrors "github.com/agbru/sqrtcalc/internal/errors"

// Ensure CLIColorProvider implements apperrors.ColorProvider at compile time.
var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider with the current theme.
type CLIColorProvider struct{}

// Yellow returns the warning color code.
func (CLIColorProvider) Yellow() string { return ColorYellow() }

// Red returns the error color code.
func (CLIColorProvider) Red() string { return ColorRed() }

// Reset returns the reset code.
func (CLIColorProvider) Reset() string { return ColorReset() }
