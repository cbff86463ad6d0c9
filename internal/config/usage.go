package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/sqrtcalc/internal/ui"
)

// setCustomUsage installs a colored usage function on fs.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}
		out := fs.Output()

		fmt.Fprintf(out, "\n%sSquare Root Calculator%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "High-precision square roots with a hybrid initial guess and Newton refinement.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] [a]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, sig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})

		fmt.Fprintf(out, "\n%sEnvironment:%s\n  Every flag can be set through %s<NAME>, e.g. %sPRECISION=500.\n\n", t.Warning, t.Reset, EnvPrefix, EnvPrefix)
	}
}
