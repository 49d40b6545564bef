package fibonacci

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/agbru/bigfib/internal/errors"
)

func TestDecimalKnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{10, "55"},
		{47, "2971215073"},
		{48, "4807526976"},
		{93, "12200160415121876738"},
		{100, "354224848179261915075"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			got, err := Decimal(tt.n)
			if err != nil {
				t.Fatalf("Decimal(%d) returned error: %v", tt.n, err)
			}
			if got != tt.want {
				t.Errorf("Decimal(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestComputeTrimsResult(t *testing.T) {
	t.Parallel()
	for _, n := range []uint64{0, 1, 47, 48, 200} {
		f, err := Compute(n)
		if err != nil {
			t.Fatalf("Compute(%d): %v", n, err)
		}
		if want := (f.BitLen() + 31) / 32; f.Len() != max(want, 1) {
			t.Errorf("Compute(%d) has %d limbs for %d bits", n, f.Len(), f.BitLen())
		}
		_ = f.Free()
	}
}

func TestComputeContextCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := compute(ctx, 5*checkInterval, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestComputeContextDeadline(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := NewCalculator().Calculate(ctx, nil, 1_000_000)
	if !apperrors.IsContextError(err) {
		t.Fatalf("expected a context error, got %v", err)
	}
}

func TestStepProgressSmallTotals(t *testing.T) {
	t.Parallel()
	tests := []struct {
		step, total uint64
		want        float64
	}{
		{0, 0, 1.0},
		{0, 10, 0},
		{5, 10, 0.25},
		{10, 10, 1.0},
		{12, 10, 1.0},
	}
	for _, tt := range tests {
		if got := StepProgress(tt.step, tt.total); got != tt.want {
			t.Errorf("StepProgress(%d, %d) = %v, want %v", tt.step, tt.total, got, tt.want)
		}
	}
}

func TestReportStepProgressThrottles(t *testing.T) {
	t.Parallel()
	var reports []float64
	reporter := func(p float64) { reports = append(reports, p) }

	var last float64
	for i := uint64(1); i <= 1000; i++ {
		ReportStepProgress(reporter, &last, i, 1000)
	}
	if len(reports) == 0 || len(reports) > 101 {
		t.Fatalf("expected between 1 and 101 reports, got %d", len(reports))
	}
	if reports[len(reports)-1] != 1.0 {
		t.Errorf("final report = %v, want 1.0", reports[len(reports)-1])
	}
	for i := 1; i < len(reports); i++ {
		if reports[i] < reports[i-1] {
			t.Fatalf("progress went backwards: %v then %v", reports[i-1], reports[i])
		}
	}

	ReportStepProgress(nil, &last, 1, 2)
}
