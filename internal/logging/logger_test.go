package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapterWritesFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Info("term computed",
		Uint64("n", 100),
		Int("digits", 21),
		String("algo", "Iterative"),
		Float64("ratio", 0.5),
		Duration("elapsed", 2*time.Millisecond),
		Field{Key: "cached", Value: true},
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", buf.String(), err)
	}
	for key, want := range map[string]any{
		"level":     "info",
		"message":   "term computed",
		"component": "test",
		"n":         float64(100),
		"digits":    float64(21),
		"algo":      "Iterative",
		"cached":    true,
	} {
		if entry[key] != want {
			t.Errorf("field %q = %v, want %v", key, entry[key], want)
		}
	}
}

func TestZerologAdapterError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "test").Error("request failed", errors.New("boom"), Int("status", 500))

	out := buf.String()
	if !strings.Contains(out, `"error":"boom"`) || !strings.Contains(out, `"status":500`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestZerologAdapterRespectsLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}
	logger.Printf("shown %d", 1)
	if !strings.Contains(buf.String(), "shown 1") {
		t.Errorf("Printf output missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" WARN ", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConsoleLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewConsoleLogger(&buf, "server").Info("listening", String("addr", ":8080"))

	out := buf.String()
	for _, want := range []string{"listening", "addr=", ":8080", "component=", "server"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output %q missing %q", out, want)
		}
	}
	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Errorf("console output should not be JSON: %q", out)
	}
}
