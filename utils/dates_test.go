package utils

import (
	"testing"
	"time"
)

func TestDateKeyRoundTrip(t *testing.T) {
	d := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	key := DateKey(d)
	if key != "2025-06-30" {
		t.Errorf("expected 2025-06-30, got %s", key)
	}

	parsed, err := ParseDateKey(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.Equal(d) {
		t.Errorf("round trip mismatch: %s", parsed)
	}
}

func TestParseDateKeyRejectsGarbage(t *testing.T) {
	for _, value := range []string{"06/30/2025", "2025-6-30", "yesterday", ""} {
		if _, err := ParseDateKey(value); err == nil {
			t.Errorf("expected error for %q", value)
		}
	}
}

func TestDateRange(t *testing.T) {
	end := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	got := DateRange(end, 4)
	want := []string{"2025-03-02", "2025-03-01", "2025-02-28", "2025-02-27"}

	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
