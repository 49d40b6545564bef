package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrLimitExceeded is matched by HandleCalculationError to select ExitErrorLimit.
// The service package wraps it when an index is above the configured maximum.
var ErrLimitExceeded = errors.New("maximum n value exceeded")

// HandleCalculationError prints a status line for a failed calculation and
// returns the matching exit code.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: How long the calculation ran before failing (0 to omit).
//   - out: Destination of the status line.
//
// Returns:
//   - int: The exit code for the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", suffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "Status: Canceled%s.\n", suffix)
		return ExitErrorCanceled
	case errors.Is(err, ErrLimitExceeded):
		fmt.Fprintf(out, "Status: Rejected. %v.\n", err)
		return ExitErrorLimit
	case IsAllocationFailure(err):
		fmt.Fprintf(out, "Status: Failure (Memory)%s: %v\n", suffix, err)
		return ExitErrorGeneric
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
