// Command sqrtcalc computes high-precision square roots by Newton refinement
// and prints the iteration log of every step.
package main

import (
	"context"
	"os"

	"github.com/agbru/sqrtcalc/internal/app"
	apperrors "github.com/agbru/sqrtcalc/internal/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	application, err := app.New(args, os.Stderr)
	if err != nil {
		switch {
		case app.IsHelpError(err):
			return apperrors.ExitSuccess
		case app.HasVersionFlag(args[1:]):
			// --version wins over an otherwise invalid command line.
			app.PrintVersion(os.Stdout)
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}
	return application.Run(context.Background(), os.Stdout)
}
