package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/bigfib/internal/ui"
	"github.com/agbru/bigfib/pkg/models"
)

// OutputConfig selects how results are written.
type OutputConfig struct {
	// JSON writes pkg/models documents instead of text.
	JSON bool
	// Quiet writes the bare decimal value of each term.
	Quiet bool
	// Verbose disables truncation of long values.
	Verbose bool
}

// truncate shortens a long decimal to its first and last DisplayEdges digits.
func truncate(value string, verbose bool) (string, bool) {
	if verbose || len(value) <= TruncationLimit {
		return value, false
	}
	return value[:DisplayEdges] + "..." + value[len(value)-DisplayEdges:], true
}

// DisplayResult writes a single term as "F(n) = <value>" followed by its
// size and the computation time.
//
// Parameters:
//   - out: The destination writer.
//   - term: The computed term.
//   - duration: How long the computation took.
//   - verbose: Print the full value even when it is long.
func DisplayResult(out io.Writer, term models.Term, duration time.Duration, verbose bool) {
	th := ui.Current()
	value, truncated := truncate(term.Value, verbose)

	fmt.Fprintf(out, "F(%s) = %s\n", colorize(th.Index, fmt.Sprint(term.N)), colorize(th.Value, value))
	fmt.Fprintf(out, "%s\n", colorize(th.Detail, fmt.Sprintf("%s digits, %s bits, computed in %s",
		formatNumberString(fmt.Sprint(term.Digits)),
		formatNumberString(fmt.Sprint(term.Bits)),
		FormatExecutionDuration(duration))))
	if truncated {
		fmt.Fprintf(out, "(use %s to display the full value)\n", colorize(th.Warning, "-v"))
	}
}

// DisplaySequence writes one "F(i) = <value>" line per term.
func DisplaySequence(out io.Writer, terms []models.Term, verbose bool) {
	th := ui.Current()
	for _, t := range terms {
		value, _ := truncate(t.Value, verbose)
		fmt.Fprintf(out, "F(%s) = %s\n", colorize(th.Index, fmt.Sprint(t.N)), colorize(th.Value, value))
	}
}

// DisplayQuietResult writes the values only, one per line, for scripting.
func DisplayQuietResult(out io.Writer, terms ...models.Term) {
	for _, t := range terms {
		fmt.Fprintln(out, t.Value)
	}
}

// WriteJSON encodes v as indented JSON followed by a newline.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// DisplayError writes a colored error line.
func DisplayError(out io.Writer, err error) {
	fmt.Fprintf(out, "%s %v\n", colorize(ui.Current().Error, "Error:"), err)
}

// formatNumberString groups the digits of s by thousands with commas.
func formatNumberString(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(n + (n-1)/3)
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
