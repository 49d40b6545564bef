// Package fibonacci computes Fibonacci numbers on top of the bignum package.
//
// The core generator is the plain iterative recurrence with two rolling
// registers: every step is a single aliasing Add followed by a pointer swap,
// so the whole computation allocates only when a register grows a limb.
// Its cost is quadratic in n, which is the expected trade-off for this
// arithmetic layer.
package fibonacci

import (
	"context"

	"github.com/agbru/bigfib/internal/bignum"
	apperrors "github.com/agbru/bigfib/internal/errors"
)

// checkInterval is the number of recurrence steps between context checks
// and progress reports.
const checkInterval = 1024

// Compute returns F(n) as a freshly allocated BigNum owned by the caller.
//
// F(0) and F(1) are returned directly. For n >= 2 the registers start at
// F(0) and F(1) and n-1 additions are applied.
//
// Returns:
//   - *bignum.BigNum: F(n), trimmed.
//   - error: a CalculationError wrapping ErrAllocation if a register could not
//     be grown.
func Compute(n uint64) (*bignum.BigNum, error) {
	return compute(context.Background(), n, nil)
}

// Decimal returns the base-10 digits of F(n).
func Decimal(n uint64) (string, error) {
	f, err := Compute(n)
	if err != nil {
		return "", err
	}
	defer f.Free()

	s, err := f.Decimal()
	if err != nil {
		return "", apperrors.CalculationError{N: n, Cause: err}
	}
	return s, nil
}

// compute runs the recurrence, checking ctx and reporting progress every
// checkInterval steps. A nil reporter is allowed.
func compute(ctx context.Context, n uint64, reporter ProgressReporter) (*bignum.BigNum, error) {
	if n < 2 {
		f, err := bignum.FromUint64(n)
		if err != nil {
			return nil, apperrors.CalculationError{N: n, Cause: err}
		}
		return f, nil
	}

	a, err := bignum.New(1)
	if err != nil {
		return nil, apperrors.CalculationError{N: n, Cause: err}
	}
	b, err := bignum.FromUint64(1)
	if err != nil {
		_ = a.Free()
		return nil, apperrors.CalculationError{N: n, Cause: err}
	}

	var lastReported float64
	for i := uint64(2); i <= n; i++ {
		if err := a.Add(a, b); err != nil {
			_ = a.Free()
			_ = b.Free()
			return nil, apperrors.CalculationError{N: n, Cause: err}
		}
		a, b = b, a

		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				_ = a.Free()
				_ = b.Free()
				return nil, err
			}
			ReportStepProgress(reporter, &lastReported, i, n)
		}
	}

	_ = a.Free()
	return b, nil
}
