// Package orchestration runs CLI calculations: it connects the service to
// the progress display and measures each run.
package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agbru/bigfib/internal/cli"
	"github.com/agbru/bigfib/internal/config"
	"github.com/agbru/bigfib/internal/fibonacci"
	"github.com/agbru/bigfib/internal/service"
	"github.com/agbru/bigfib/pkg/models"
)

// progressBufferSize is the capacity of the progress channel. The channel
// observer drops updates when it is full, so this only smooths the display.
const progressBufferSize = 16

// CalculationResult is the outcome of one CLI run.
type CalculationResult struct {
	// Terms holds one term for a single calculation, or the requested range.
	Terms []models.Term
	// Duration is the wall time of the computation, display excluded.
	Duration time.Duration
	// Err is the failure, if any; Terms is nil when it is set.
	Err error
}

func newService(calc fibonacci.Calculator, cfg config.AppConfig, opts ...service.Option) *service.CalculatorService {
	opts = append([]service.Option{
		service.WithMaxN(cfg.MaxN),
		service.WithWorkers(cfg.Workers),
	}, opts...)
	return service.NewCalculatorService(calc, opts...)
}

// ExecuteCalculation computes F(cfg.N). Progress goes to a spinner on out
// when out is an interactive terminal and the configuration allows it, and
// to the debug log in every case.
//
// Parameters:
//   - ctx: Cancels the calculation.
//   - calc: The calculator to run.
//   - cfg: The application configuration (N, MaxN, display flags).
//   - out: Where the progress display is drawn.
//
// Returns:
//   - CalculationResult: The term or the error, with the duration.
func ExecuteCalculation(ctx context.Context, calc fibonacci.Calculator, cfg config.AppConfig, out io.Writer) CalculationResult {
	progressCh := make(chan fibonacci.ProgressUpdate, progressBufferSize)
	subject := fibonacci.NewProgressSubject()
	channelObserver := fibonacci.NewChannelObserver(progressCh)
	subject.Register(channelObserver)
	subject.Register(fibonacci.NewLoggingObserver(log.Logger, 0.1))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	if cli.ShouldShowSpinner(out, cfg.Quiet, cfg.JSONOutput, cfg.NoSpinner) {
		go cli.DisplayProgress(&displayWg, progressCh, out)
	} else {
		go cli.DrainProgress(&displayWg, progressCh)
	}

	svc := newService(calc, cfg, service.WithProgressReporter(subject.AsProgressReporter(0)))
	start := time.Now()
	term, err := svc.Decimal(ctx, cfg.N)
	duration := time.Since(start)

	// No update may reach the channel once it is closed.
	subject.Unregister(channelObserver)
	close(progressCh)
	displayWg.Wait()

	if err != nil {
		return CalculationResult{Duration: duration, Err: err}
	}
	return CalculationResult{Terms: []models.Term{term}, Duration: duration}
}

// ExecuteSequence computes F(cfg.From) through F(cfg.To).
func ExecuteSequence(ctx context.Context, calc fibonacci.Calculator, cfg config.AppConfig) CalculationResult {
	start := time.Now()
	terms, err := newService(calc, cfg).Range(ctx, cfg.From, cfg.To)
	duration := time.Since(start)
	if err != nil {
		return CalculationResult{Duration: duration, Err: err}
	}
	return CalculationResult{Terms: terms, Duration: duration}
}
