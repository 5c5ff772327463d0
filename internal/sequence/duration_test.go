package sequence

import (
	"math"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "0:00"},
		{"negative", -1, "0:00"},
		{"NaN", math.NaN(), "0:00"},
		{"positive infinity", math.Inf(1), "0:00"},
		{"negative infinity", math.Inf(-1), "0:00"},
		{"pads seconds", 65, "1:05"},
		{"fraction floors", 65.9, "1:05"},
		{"under a minute", 59.99, "0:59"},
		{"exact minute", 60, "1:00"},
		{"no hours", 7500, "125:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(3*time.Minute + 7*time.Second + 500*time.Millisecond); got != "3:07" {
		t.Errorf("FormatTime() = %q, want 3:07", got)
	}
	if got := FormatTime(-time.Second); got != "0:00" {
		t.Errorf("FormatTime(-1s) = %q, want 0:00", got)
	}
}
