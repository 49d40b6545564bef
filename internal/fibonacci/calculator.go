package fibonacci

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigfib/internal/bignum"
)

// AlgorithmName identifies the iterative recurrence in metrics and logs.
const AlgorithmName = "Iterative"

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigfib_calculations_total",
			Help: "The total number of Fibonacci calculations processed",
		},
		[]string{"algorithm", "status"},
	)
	calculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bigfib_calculation_duration_seconds",
			Help:    "The duration of Fibonacci calculations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"algorithm"},
	)
)

// Calculator is the interface used by the service layer to compute terms.
type Calculator interface {
	// Calculate computes F(n). The context is checked between recurrence
	// steps; progress is sent to reporter, which may be nil.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - reporter: The progress callback.
	//   - n: The index of the Fibonacci number to calculate.
	//
	// Returns:
	//   - *bignum.BigNum: F(n), owned by the caller.
	//   - error: A context error or a CalculationError.
	Calculate(ctx context.Context, reporter ProgressReporter, n uint64) (*bignum.BigNum, error)

	// Name returns the display name of the algorithm.
	Name() string
}

// FibCalculator decorates the recurrence with tracing, metrics, debug logging
// and observer-based progress reporting.
type FibCalculator struct {
	name string
}

// NewCalculator returns the default Calculator.
func NewCalculator() *FibCalculator {
	return &FibCalculator{name: AlgorithmName}
}

// Name returns the algorithm name.
func (c *FibCalculator) Name() string {
	return c.name
}

// Calculate implements Calculator.
func (c *FibCalculator) Calculate(ctx context.Context, reporter ProgressReporter, n uint64) (*bignum.BigNum, error) {
	subject := NewProgressSubject()
	if reporter != nil {
		subject.Register(reporterObserver(reporter))
	}
	return c.CalculateWithObservers(ctx, subject, 0, n)
}

// CalculateWithObservers computes F(n) and notifies every observer registered
// on subject. A final 1.0 update is sent on success.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - subject: The progress subject. If nil or empty, progress is ignored.
//   - calcIndex: The identifier passed to observers.
//   - n: The index of the Fibonacci number to calculate.
//
// Returns:
//   - *bignum.BigNum: F(n), owned by the caller.
//   - error: A context error or a CalculationError.
func (c *FibCalculator) CalculateWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, n uint64) (result *bignum.BigNum, err error) {
	ctx, span := otel.Tracer("fibonacci").Start(ctx, "Calculate",
		trace.WithAttributes(
			attribute.String("fibonacci.algorithm", c.name),
			attribute.Int64("fibonacci.n", int64(n)),
		))
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		calculationsTotal.WithLabelValues(c.name, status).Inc()
		calculationDuration.WithLabelValues(c.name).Observe(duration)

		log.Debug().
			Str("algo", c.name).
			Uint64("n", n).
			Float64("duration", duration).
			Str("status", status).
			Msg("calculation completed")
	}()

	var reporter ProgressReporter
	if subject != nil && subject.ObserverCount() > 0 {
		reporter = subject.AsProgressReporter(calcIndex)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err = compute(ctx, n, reporter)
	if err == nil && reporter != nil {
		reporter(1.0)
	}
	return result, err
}
