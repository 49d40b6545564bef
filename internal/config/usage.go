package config

import (
	"flag"
	"fmt"
)

// setCustomUsage replaces the default flag listing with a grouped one.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()

		fmt.Fprintf(out, "\nbigfib - arbitrary-precision Fibonacci numbers\n\n")
		fmt.Fprintf(out, "Usage:\n  %s [flags]\n  %s -from 0 -to 20\n  %s -server -port 8080\n\nFlags:\n", fs.Name(), fs.Name(), fs.Name())

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := "-" + f.Name
			if len(name) > 0 {
				flagSig += " " + name
			}
			fmt.Fprintf(out, "  %-22s %s", flagSig, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " (default %s)", f.DefValue)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nEvery flag can also be set with a %s variable, e.g. %sMAX_N.\n\n", EnvPrefix, EnvPrefix)
	}
}
