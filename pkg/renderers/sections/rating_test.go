package sections

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRating(t *testing.T) {
	cases := map[string]int{
		"":     5,
		"  ":   5,
		"3":    3,
		" 4 ":  4,
		"abc":  5,
		"4.7":  4,
		"0":    0,
		"-2":   5,
		"12":   5,
		"NaN":  5,
		"+Inf": 5,
	}
	for raw, want := range cases {
		if got := Rating(raw, DefaultMaxRating); got != want {
			t.Fatalf("Rating(%q) = %d, want %d", raw, got, want)
		}
	}

	if got := Rating("8", 10); got != 8 {
		t.Fatalf("expected higher cap to allow 8, got %d", got)
	}
	if got := Rating("", 3); got != 3 {
		t.Fatalf("expected fallback clamped to cap, got %d", got)
	}
}

func TestRevealDelays(t *testing.T) {
	want := []time.Duration{0, 120 * time.Millisecond, 240 * time.Millisecond}
	if diff := cmp.Diff(want, RevealDelays(3, DefaultRevealDelay)); diff != "" {
		t.Fatalf("delays mismatch (-want +got):\n%s", diff)
	}
	if got := RevealDelays(0, DefaultRevealDelay); len(got) != 0 {
		t.Fatalf("expected no delays, got %v", got)
	}
	if diff := cmp.Diff([]time.Duration{0, 0}, RevealDelays(2, 0)); diff != "" {
		t.Fatalf("zero base mismatch (-want +got):\n%s", diff)
	}
}
