// Package service maps Fibonacci indexes to computed terms. It is the layer
// shared by the CLI and the HTTP server: it enforces the index limit, turns
// BigNum results into wire models and runs batches concurrently.
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigfib/internal/bignum"
	apperrors "github.com/agbru/bigfib/internal/errors"
	"github.com/agbru/bigfib/internal/fibonacci"
	"github.com/agbru/bigfib/pkg/models"
)

// MaxRangeTerms bounds the number of terms returned by one Range call.
const MaxRangeTerms = 10_000

// ErrMaxValueExceeded is returned when an index is above the configured limit.
var ErrMaxValueExceeded = apperrors.ErrLimitExceeded

// LimitError names the index that was rejected. errors.Is matches it against
// ErrMaxValueExceeded.
type LimitError struct {
	// Index is the rejected Fibonacci index.
	Index uint64
	// Max is the configured limit.
	Max uint64
}

func (e LimitError) Error() string {
	return fmt.Sprintf("%v: %d is above the limit of %d", ErrMaxValueExceeded, e.Index, e.Max)
}

// Unwrap returns ErrMaxValueExceeded.
func (e LimitError) Unwrap() error { return ErrMaxValueExceeded }

// Service defines the operations offered to the CLI and the HTTP server.
type Service interface {
	// Decimal computes F(n).
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - n: The Fibonacci index.
	//
	// Returns:
	//   - models.Term: The computed term.
	//   - error: ErrMaxValueExceeded, a context error or a CalculationError.
	Decimal(ctx context.Context, n uint64) (models.Term, error)

	// Range returns F(from)..F(to) in order, reading the sequence once.
	Range(ctx context.Context, from, to uint64) ([]models.Term, error)

	// Batch computes every index concurrently; results keep the input order.
	Batch(ctx context.Context, ns []uint64) ([]models.Term, error)
}

// CalculatorService implements Service on top of a fibonacci.Calculator.
type CalculatorService struct {
	calc     fibonacci.Calculator
	maxN     uint64
	workers  int
	reporter fibonacci.ProgressReporter
}

// Ensure CalculatorService implements Service interface.
var _ Service = (*CalculatorService)(nil)

// Option configures a CalculatorService.
type Option func(*CalculatorService)

// WithMaxN sets the largest index accepted (0 for no limit).
func WithMaxN(maxN uint64) Option {
	return func(s *CalculatorService) { s.maxN = maxN }
}

// WithWorkers sets the batch concurrency. Values below 1 are ignored.
func WithWorkers(workers int) Option {
	return func(s *CalculatorService) {
		if workers >= 1 {
			s.workers = workers
		}
	}
}

// WithProgressReporter sends Decimal progress to reporter.
func WithProgressReporter(reporter fibonacci.ProgressReporter) Option {
	return func(s *CalculatorService) { s.reporter = reporter }
}

// NewCalculatorService creates a service using calc. The defaults are no
// index limit and one worker per CPU.
func NewCalculatorService(calc fibonacci.Calculator, opts ...Option) *CalculatorService {
	s := &CalculatorService{calc: calc, workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the name of the underlying algorithm.
func (s *CalculatorService) Name() string {
	return s.calc.Name()
}

func (s *CalculatorService) checkLimit(n uint64) error {
	if s.maxN > 0 && n > s.maxN {
		return LimitError{Index: n, Max: s.maxN}
	}
	return nil
}

// Decimal implements Service.
func (s *CalculatorService) Decimal(ctx context.Context, n uint64) (models.Term, error) {
	if err := s.checkLimit(n); err != nil {
		return models.Term{}, err
	}
	f, err := s.calc.Calculate(ctx, s.reporter, n)
	if err != nil {
		return models.Term{}, err
	}
	defer f.Free()
	return newTerm(n, f)
}

// Range implements Service.
func (s *CalculatorService) Range(ctx context.Context, from, to uint64) ([]models.Term, error) {
	if from > to {
		return nil, apperrors.NewValidationError("from", "must not be greater than to", from)
	}
	if to-from >= MaxRangeTerms {
		return nil, apperrors.NewValidationError("to", fmt.Sprintf("range is limited to %d terms", MaxRangeTerms), to)
	}
	if err := s.checkLimit(to); err != nil {
		return nil, err
	}

	seq, err := fibonacci.NewSequence()
	if err != nil {
		return nil, apperrors.CalculationError{N: from, Cause: err}
	}
	defer seq.Close()

	if err := seq.Seek(ctx, from); err != nil {
		return nil, err
	}
	terms := make([]models.Term, 0, to-from+1)
	for seq.Index() <= to {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, f, err := seq.Next()
		if err != nil {
			return nil, err
		}
		term, err := newTerm(n, f)
		_ = f.Free()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
		if n == to {
			break
		}
	}
	return terms, nil
}

// Batch implements Service. The first failure cancels the remaining work.
func (s *CalculatorService) Batch(ctx context.Context, ns []uint64) ([]models.Term, error) {
	for _, n := range ns {
		if err := s.checkLimit(n); err != nil {
			return nil, err
		}
	}

	results := make([]models.Term, len(ns))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, n := range ns {
		g.Go(func() error {
			f, err := s.calc.Calculate(gctx, nil, n)
			if err != nil {
				return err
			}
			defer f.Free()
			term, err := newTerm(n, f)
			if err != nil {
				return err
			}
			results[i] = term
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newTerm(n uint64, f *bignum.BigNum) (models.Term, error) {
	s, err := f.Decimal()
	if err != nil {
		return models.Term{}, apperrors.CalculationError{N: n, Cause: err}
	}
	return models.Term{N: n, Value: s, Digits: len(s), Bits: f.BitLen()}, nil
}
