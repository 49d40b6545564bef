package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigfib/internal/config"
	"github.com/agbru/bigfib/internal/ui"
)

// PrintExecutionConfig describes the run about to start.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	th := ui.Current()
	fmt.Fprintf(out, "%s\n", colorize(th.Bold, "--- Execution Configuration ---"))
	if cfg.SequenceMode {
		fmt.Fprintf(out, "Listing F(%s) through F(%s) with a timeout of %s.\n",
			colorize(th.Index, fmt.Sprint(cfg.From)), colorize(th.Index, fmt.Sprint(cfg.To)), cfg.Timeout)
	} else {
		fmt.Fprintf(out, "Calculating F(%s) with a timeout of %s.\n",
			colorize(th.Index, fmt.Sprint(cfg.N)), cfg.Timeout)
	}
	fmt.Fprintf(out, "Environment: %s logical processors, Go %s.\n",
		colorize(th.Detail, fmt.Sprint(runtime.NumCPU())), colorize(th.Detail, runtime.Version()))
	fmt.Fprintln(out)
}
