package orchestration

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agbru/bigfib/internal/bignum"
	"github.com/agbru/bigfib/internal/config"
	apperrors "github.com/agbru/bigfib/internal/errors"
	"github.com/agbru/bigfib/internal/fibonacci"
)

// SpyCalculator records the progress it is handed and returns n itself.
type SpyCalculator struct {
	mu       sync.Mutex
	reported []float64
	err      error
}

func (s *SpyCalculator) Name() string { return "Spy" }

func (s *SpyCalculator) Calculate(ctx context.Context, reporter fibonacci.ProgressReporter, n uint64) (*bignum.BigNum, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range []float64{0.25, 0.5, 1} {
		if reporter != nil {
			reporter(p)
		}
		s.mu.Lock()
		s.reported = append(s.reported, p)
		s.mu.Unlock()
	}
	return bignum.FromUint64(n)
}

func testConfig() config.AppConfig {
	return config.AppConfig{N: 12, Timeout: time.Minute, Workers: 1, NoSpinner: true}
}

func TestExecuteCalculation(t *testing.T) {
	t.Parallel()
	spy := &SpyCalculator{}
	res := ExecuteCalculation(context.Background(), spy, testConfig(), &bytes.Buffer{})

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Terms) != 1 || res.Terms[0].N != 12 || res.Terms[0].Value != "12" {
		t.Errorf("unexpected terms %+v", res.Terms)
	}
	if len(spy.reported) != 3 {
		t.Errorf("expected 3 progress reports, got %v", spy.reported)
	}
}

func TestExecuteCalculationRealGenerator(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.N = 300
	res := ExecuteCalculation(context.Background(), fibonacci.NewCalculator(), cfg, &bytes.Buffer{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	want := "222232244629420445529739893461909967206666939096499764990979600"
	if got := res.Terms[0].Value; got != want {
		t.Errorf("F(300) = %s, want %s", got, want)
	}
}

func TestExecuteCalculationErrors(t *testing.T) {
	t.Parallel()

	t.Run("calculator failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		res := ExecuteCalculation(context.Background(), &SpyCalculator{err: boom}, testConfig(), &bytes.Buffer{})
		if !errors.Is(res.Err, boom) || res.Terms != nil {
			t.Errorf("unexpected result %+v", res)
		}
	})

	t.Run("limit", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.MaxN = 5
		res := ExecuteCalculation(context.Background(), &SpyCalculator{}, cfg, &bytes.Buffer{})
		if !errors.Is(res.Err, apperrors.ErrLimitExceeded) {
			t.Errorf("expected limit error, got %v", res.Err)
		}
	})
}

func TestExecuteSequence(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.SequenceMode, cfg.From, cfg.To = true, 10, 12
	res := ExecuteSequence(context.Background(), fibonacci.NewCalculator(), cfg)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	var values []string
	for _, term := range res.Terms {
		values = append(values, term.Value)
	}
	if len(values) != 3 || values[0] != "55" || values[1] != "89" || values[2] != "144" {
		t.Errorf("unexpected values %v", values)
	}

	cfg.From, cfg.To = 4, 1
	if res := ExecuteSequence(context.Background(), fibonacci.NewCalculator(), cfg); res.Err == nil {
		t.Error("expected an error for an inverted range")
	}
}
