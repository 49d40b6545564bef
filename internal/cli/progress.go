package cli

import (
	"fmt"
	"sync"
	"time"
)

// maxETA caps estimates so early noise never shows absurd values.
const maxETA = 24 * time.Hour

// progressTracker estimates the time remaining for one calculation.
//
// Reported progress is already normalized to work done (the generator
// reports (i/n)², which tracks its quadratic cost), so the remaining time
// is extrapolated linearly: eta = elapsed * (1-p) / p.
type progressTracker struct {
	mu       sync.Mutex
	now      func() time.Time
	start    time.Time
	progress float64
}

func newProgressTracker(now func() time.Time) *progressTracker {
	return &progressTracker{now: now, start: now()}
}

// Update records the latest progress value; regressions are ignored.
func (p *progressTracker) Update(progress float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = max(p.progress, min(progress, 1))
}

// Progress returns the latest progress in [0, 1].
func (p *progressTracker) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}

// ETA returns the estimated time remaining, 0 when unknown or finished.
func (p *progressTracker) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := p.now().Sub(p.start)
	if p.progress <= 0.001 || p.progress >= 1 || elapsed < 100*time.Millisecond {
		return 0
	}
	eta := time.Duration(float64(elapsed) * (1 - p.progress) / p.progress)
	return min(eta, maxETA)
}

// FormatETA renders an estimate as "< 1s", "42s", "2m30s" or "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m, s := int(eta.Minutes()), int(eta.Seconds())%60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h, m := int(eta.Hours()), int(eta.Minutes())%60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}
