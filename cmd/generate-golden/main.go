// Command generate-golden writes internal/fibonacci/testdata/fibonacci_golden.json.
//
// Values come from a math/big oracle and are cross-checked against the
// bigfib generator before the file is written, so a regression in either
// side stops generation instead of producing a bad golden file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/agbru/bigfib/internal/fibonacci"
)

// goldenEntry mirrors the GoldenData type read by the fibonacci tests.
type goldenEntry struct {
	N      uint64 `json:"n"`
	Result string `json:"result"`
}

// targets covers the 64-bit boundary (F(93) is the largest term below 2^64)
// and a few larger indexes around powers of two.
var targets = []uint64{
	0, 1, 2, 3, 4, 5, 10, 20, 50, 92, 93, 94, 100,
	128, 256, 512, 1000, 1024,
	2000, 2048, 5000, 8192, 10000,
}

func main() {
	outputDir := flag.String("out", "internal/fibonacci/testdata", "Output directory for the golden file")
	verify := flag.Bool("verify", true, "Cross-check every value against the bigfib generator")
	flag.Parse()

	if err := run(*outputDir, *verify); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
}

func run(outputDir string, verify bool) error {
	entries := make([]goldenEntry, 0, len(targets))
	for _, n := range targets {
		want := oracle(n).String()
		if verify {
			got, err := fibonacci.Decimal(n)
			if err != nil {
				return fmt.Errorf("computing F(%d): %w", n, err)
			}
			if got != want {
				return fmt.Errorf("F(%d) mismatch: generator %s..., oracle %s...", n, prefix(got), prefix(want))
			}
		}
		entries = append(entries, goldenEntry{N: n, Result: want})
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	filename := filepath.Join(outputDir, "fibonacci_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	fmt.Printf("wrote %d entries to %s\n", len(entries), filename)
	return nil
}

// oracle computes F(n) with math/big.
func oracle(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for range n {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func prefix(s string) string {
	if len(s) > 20 {
		return s[:20]
	}
	return s
}
