package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigfib/internal/cli"
	"github.com/agbru/bigfib/internal/config"
	apperrors "github.com/agbru/bigfib/internal/errors"
	"github.com/agbru/bigfib/internal/fibonacci"
	"github.com/agbru/bigfib/internal/logging"
	"github.com/agbru/bigfib/internal/orchestration"
	"github.com/agbru/bigfib/internal/server"
	"github.com/agbru/bigfib/internal/ui"
	"github.com/agbru/bigfib/pkg/models"
)

// Application is one bigfib invocation: the parsed configuration and the
// calculator it runs in CLI or server mode.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Calculator computes the terms. Tests may replace it.
	Calculator fibonacci.Calculator
	// ErrWriter receives logs and error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New parses the command-line arguments and configures logging.
//
// Parameters:
//   - args: The command-line arguments including the program name (os.Args).
//   - errWriter: The writer for logs, usage and errors.
//
// Returns:
//   - *Application: A new application instance.
//   - error: flag.ErrHelp for -h, or the parsing/validation error.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "bigfib"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.Configure(errWriter, level)

	return &Application{
		Config:     cfg,
		Calculator: fibonacci.NewCalculator(),
		ErrWriter:  errWriter,
	}, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor, out)

	switch {
	case a.Config.ServerMode:
		return a.runServer(ctx)
	case a.Config.SequenceMode:
		return a.runSequence(ctx, out)
	default:
		return a.runCalculate(ctx, out)
	}
}

func (a *Application) runServer(ctx context.Context) int {
	ctx, cancel := runContext(ctx, a.Config)
	defer cancel()

	srv := server.NewServer(a.Calculator, a.Config, a.serverOptions()...)
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// serverOptions maps the server flags onto server options: the log format,
// the per-client rate limit and the accepted CORS origins.
func (a *Application) serverOptions() []server.Option {
	var logger logging.Logger = logging.NewLogger(a.ErrWriter, "server")
	if ui.IsTerminal(a.ErrWriter) {
		logger = logging.NewConsoleLogger(a.ErrWriter, "server")
	}

	security := server.DefaultSecurityConfig()
	security.MaxNValue = a.Config.MaxN
	security.AllowedOrigins = a.Config.Origins()
	security.EnableCORS = len(security.AllowedOrigins) > 0

	return []server.Option{
		server.WithLogger(logger),
		server.WithSecurityConfig(security),
		server.WithRateLimiter(server.NewRateLimiter(server.RateLimiterConfig{
			Requests: a.Config.RateLimit,
			Window:   time.Minute,
		})),
	}
}

// runCalculate computes the single term F(n).
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancel := runContext(ctx, a.Config)
	defer cancel()

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	res := orchestration.ExecuteCalculation(ctx, a.Calculator, a.Config, out)
	if res.Err != nil {
		return a.handleError(res.Err, res.Duration, out)
	}
	term := res.Terms[0]

	switch {
	case a.Config.JSONOutput:
		return writeJSON(out, models.FibResponse{
			Term:      term,
			Duration:  res.Duration.String(),
			Algorithm: a.Calculator.Name(),
		})
	case a.Config.Quiet:
		cli.DisplayQuietResult(out, term)
	default:
		cli.DisplayResult(out, term, res.Duration, a.Config.Verbose)
	}
	return apperrors.ExitSuccess
}

// runSequence prints F(from) through F(to).
func (a *Application) runSequence(ctx context.Context, out io.Writer) int {
	ctx, cancel := runContext(ctx, a.Config)
	defer cancel()

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	res := orchestration.ExecuteSequence(ctx, a.Calculator, a.Config)
	if res.Err != nil {
		return a.handleError(res.Err, res.Duration, out)
	}

	switch {
	case a.Config.JSONOutput:
		return writeJSON(out, models.SequenceResponse{
			From:     a.Config.From,
			To:       a.Config.To,
			Terms:    res.Terms,
			Duration: res.Duration.String(),
		})
	case a.Config.Quiet:
		cli.DisplayQuietResult(out, res.Terms...)
	default:
		cli.DisplaySequence(out, res.Terms, a.Config.Verbose)
	}
	return apperrors.ExitSuccess
}

// handleError reports err in the configured output format and maps it to
// an exit code.
func (a *Application) handleError(err error, duration time.Duration, out io.Writer) int {
	var vErr apperrors.ValidationError
	if errors.As(err, &vErr) {
		cli.DisplayError(a.ErrWriter, err)
		return apperrors.ExitErrorConfig
	}
	if !a.Config.JSONOutput {
		return apperrors.HandleCalculationError(err, duration, out)
	}
	code := apperrors.HandleCalculationError(err, duration, io.Discard)
	label := "calculation failed"
	if apperrors.IsContextError(err) {
		label = "calculation interrupted"
	}
	_ = cli.WriteJSON(out, models.ErrorResponse{Error: label, Message: err.Error()})
	return code
}

func writeJSON(out io.Writer, v any) int {
	if err := cli.WriteJSON(out, v); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err means -h or -help was given.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
