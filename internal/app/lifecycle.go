package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/bigfib/internal/config"
)

// shutdownSignals end a run early: Ctrl+C and the service manager's stop.
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// runContext derives the context of one bigfib run from parent.
//
// Every run is canceled by SIGINT or SIGTERM. CLI runs (single term or
// sequence) are additionally bounded by cfg.Timeout; a server keeps running
// until it is signaled, each request carrying its own deadline.
//
// Parameters:
//   - parent: The parent context.
//   - cfg: The configuration; ServerMode and Timeout are read.
//
// Returns:
//   - context.Context: The run context.
//   - context.CancelFunc: Releases the timer and the signal registration.
func runContext(parent context.Context, cfg config.AppConfig) (context.Context, context.CancelFunc) {
	ctx, stopSignals := signal.NotifyContext(parent, shutdownSignals...)
	if cfg.ServerMode {
		return ctx, stopSignals
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.Timeout)
	return ctx, func() {
		cancelTimeout()
		stopSignals()
	}
}
