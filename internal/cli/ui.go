// Package cli renders bigfib results and progress on a terminal: the
// spinner with its progress bar while a term is computed, and the text or
// JSON form of the results.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigfib/internal/fibonacci"
	"github.com/agbru/bigfib/internal/ui"
)

const (
	// TruncationLimit is the digit count above which values are shortened
	// unless -v is given.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits kept when a
	// value is shortened.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner redraw interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width of the bar in characters.
	ProgressBarWidth = 40
)

// FormatExecutionDuration prints short durations in µs or ms and longer
// ones with time.Duration's own format.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}

// Spinner abstracts the terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text drawn after the spinner glyph.
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// progressBar draws a bar of length cells for progress in [0, 1]; values
// outside are clamped.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// progressLine is the suffix shown next to the spinner.
func progressLine(progress float64, eta time.Duration) string {
	return fmt.Sprintf("Progress: %6.2f%% [%s] ETA: %s", progress*100, progressBar(progress, ProgressBarWidth), FormatETA(eta))
}

// DisplayProgress shows a spinner with a progress bar fed by progressChan
// until the channel is closed, then prints a final 100% line. It is meant
// to run in its own goroutine and calls wg.Done on return.
//
// Parameters:
//   - wg: Signaled when the display has finished.
//   - progressChan: Progress updates; closed by the caller when done.
//   - out: The writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, out io.Writer) {
	defer wg.Done()

	tracker := newProgressTracker(time.Now)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				stopped = true
				fmt.Fprintln(out, progressLine(1, 0))
				return
			}
			tracker.Update(update.Value)
		case <-ticker.C:
			s.UpdateSuffix(" " + progressLine(tracker.Progress(), tracker.ETA()))
		}
	}
}

// DrainProgress consumes progressChan without displaying anything, for
// quiet and JSON runs.
func DrainProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate) {
	defer wg.Done()
	for range progressChan {
	}
}

// ShouldShowSpinner reports whether the interactive display is wanted on out.
func ShouldShowSpinner(out io.Writer, quiet, jsonOutput, noSpinner bool) bool {
	return !quiet && !jsonOutput && !noSpinner && ui.IsTerminal(out)
}

func colorize(color, s string) string {
	return color + s + ui.Current().Reset
}
