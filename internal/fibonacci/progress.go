package fibonacci

// ProgressReportThreshold is the minimum progress delta between two reports.
const ProgressReportThreshold = 0.01

// ProgressUpdate carries the progress of one calculation to a channel
// consumer such as the CLI spinner.
type ProgressUpdate struct {
	// CalculatorIndex distinguishes concurrent calculations.
	CalculatorIndex int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter is the callback used by the recurrence to report progress.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
type ProgressReporter func(progress float64)

// StepProgress estimates the share of work done after step of total steps.
//
// The operands of step i are about 0.694*i bits wide, so the cost of one
// step grows linearly and the cumulative work grows with the square of the
// step count.
func StepProgress(step, total uint64) float64 {
	if total == 0 || step >= total {
		return 1.0
	}
	r := float64(step) / float64(total)
	return r * r
}

// ReportStepProgress calls reporter when progress has moved by at least
// ProgressReportThreshold since *lastReported, or on the final step.
//
// Parameters:
//   - reporter: The callback; nil disables reporting.
//   - lastReported: The last value reported, updated in place.
//   - step: The current step.
//   - total: The number of steps.
func ReportStepProgress(reporter ProgressReporter, lastReported *float64, step, total uint64) {
	if reporter == nil {
		return
	}
	p := StepProgress(step, total)
	if p-*lastReported >= ProgressReportThreshold || step >= total {
		reporter(p)
		*lastReported = p
	}
}
