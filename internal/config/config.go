// Package config provides the configuration management for the bigfib
// application. It defines the configuration structure, parses command-line
// flags, applies environment overrides and validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	apperrors "github.com/agbru/bigfib/internal/errors"
	"github.com/agbru/bigfib/internal/logging"
)

// EnvPrefix is the prefix for all environment variables read by bigfib.
const EnvPrefix = "BIGFIB_"

// Default configuration values.
const (
	// DefaultN is the default Fibonacci index to compute.
	DefaultN uint64 = 100
	// DefaultMaxN caps the index accepted by the service. The generator is
	// quadratic, so very large indexes are rejected rather than attempted.
	DefaultMaxN uint64 = 1_000_000
	// DefaultTimeout is the default calculation timeout.
	DefaultTimeout = time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultLogLevel is the default zerolog level.
	DefaultLogLevel = "info"
	// DefaultRateLimit is the number of requests per minute a server client
	// may make.
	DefaultRateLimit = 60
	// DefaultCORSOrigins accepts cross-origin requests from anywhere.
	DefaultCORSOrigins = "*"
)

// AppConfig aggregates the parsed configuration.
type AppConfig struct {
	// N is the index of the single term to compute.
	N uint64
	// From and To bound the offsets printed in sequence mode, inclusive.
	From, To uint64
	// SequenceMode is set when -to was given, on the command line or in the
	// environment.
	SequenceMode bool
	// Timeout is the maximum duration for a CLI run.
	Timeout time.Duration
	// MaxN is the largest index accepted; 0 disables the limit.
	MaxN uint64
	// Workers bounds the number of concurrent batch calculations.
	Workers int
	// JSONOutput emits pkg/models JSON instead of text.
	JSONOutput bool
	// Quiet prints the bare decimal value only.
	Quiet bool
	// Verbose prints the full value instead of a truncated one.
	Verbose bool
	// ServerMode starts the HTTP server.
	ServerMode bool
	// Port is the server listening port.
	Port string
	// LogLevel is one of debug, info, warn, error, disabled.
	LogLevel string
	// NoSpinner disables the terminal spinner.
	NoSpinner bool
	// NoColor disables ANSI colors in text output.
	NoColor bool
	// RateLimit is the number of requests per minute and client accepted in
	// server mode.
	RateLimit int
	// CORSOrigins is a comma-separated list of accepted origins in server
	// mode. Empty disables CORS.
	CORSOrigins string
}

// Origins splits CORSOrigins, dropping blank entries.
func (c AppConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Validate checks the semantic consistency of the configuration.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError("workers must be at least 1: %d", c.Workers)
	}
	if c.SequenceMode && c.From > c.To {
		return apperrors.NewConfigError("sequence start %d is after its end %d", c.From, c.To)
	}
	if c.RateLimit < 0 {
		return apperrors.NewConfigError("rate limit cannot be negative: %d", c.RateLimit)
	}
	if c.Port == "" {
		return apperrors.NewConfigError("port cannot be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// BIGFIB_ environment overrides for flags that were not set, and validates
// the result.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The arguments without the program name.
//   - errorWriter: Where parsing errors and usage are printed.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp for -h, or an error if parsing or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.Uint64Var(&config.N, "n", DefaultN, "Index n of the Fibonacci number to compute.")
	fs.Uint64Var(&config.From, "from", 0, "First offset printed in sequence mode.")
	fs.Uint64Var(&config.To, "to", 0, "Last offset printed in sequence mode (enables sequence mode).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.Uint64Var(&config.MaxN, "max-n", DefaultMaxN, "Largest index accepted (0 for no limit).")
	fs.IntVar(&config.Workers, "workers", runtime.NumCPU(), "Maximum concurrent calculations for batch requests.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the value.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full value of the result.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error, disabled.")
	fs.BoolVar(&config.NoSpinner, "no-spinner", false, "Disable the progress spinner.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also honors NO_COLOR).")
	fs.IntVar(&config.RateLimit, "rate-limit", DefaultRateLimit, "Requests per minute and client in server mode.")
	fs.StringVar(&config.CORSOrigins, "cors-origins", DefaultCORSOrigins, "Comma-separated CORS origins in server mode (empty disables CORS).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)
	config.SequenceMode = config.SequenceMode || isFlagSet(fs, "to")

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errInvalidConfig, err)
	}
	return config, nil
}

var errInvalidConfig = errors.New("invalid configuration")
