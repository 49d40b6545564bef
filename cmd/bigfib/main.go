// Command bigfib computes Fibonacci numbers with an arbitrary-precision
// integer built on 32-bit limbs. It prints a single term, a range of terms,
// or serves them over HTTP with -server.
package main

import (
	"context"
	"os"
	"slices"

	"github.com/agbru/bigfib/internal/app"
	apperrors "github.com/agbru/bigfib/internal/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if app.HasVersionFlag(args[1:]) {
		app.PrintVersion(os.Stdout, slices.Contains(args[1:], "-json"))
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}
	return application.Run(context.Background(), os.Stdout)
}
