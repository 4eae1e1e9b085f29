package readers

import (
	"testing"
	"time"
)

func TestIsNA(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"NA", true},
		{"n/a", true},
		{"--", true},
		{"12.3", false},
		{"none", true},
	}
	for _, c := range cases {
		if got := IsNA(c.in); got != c.want {
			t.Errorf("IsNA(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSmartParseFloat(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12.5", 12.5, false},
		{"12,5", 12.5, false},
		{"", 0.0, false},
		{"NA", 0.0, false},
		{"1,234.5", 0, true},
	}
	for _, c := range cases {
		got, err := SmartParseFloat(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("SmartParseFloat(%q) expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SmartParseFloat(%q) unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("SmartParseFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSmartParseDatetimeClosestNotFuture(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Only the "2006-01-02" layout matches; its single candidate is
	// midnight of that day, which is not after now, so it is returned.
	got, err := SmartParseDatetime("2026-03-01", time.UTC, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2026 || got.Month() != 3 || got.Day() != 1 {
		t.Errorf("got %v, want 2026-03-01", got)
	}
}

func TestSmartParseDatetimeBothOrderingsAgree(t *testing.T) {
	now := time.Date(2020, 12, 10, 0, 0, 0, 0, time.UTC)

	monthFirst, err := SmartParseDatetime("12/03/2020 15:30", time.UTC, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dayFirst, err := SmartParseDatetime("03/12/2020 15:30", time.UTC, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !monthFirst.Equal(dayFirst) {
		t.Errorf("ambiguous orderings resolved differently: %v vs %v", monthFirst, dayFirst)
	}
	want := time.Date(2020, 12, 3, 15, 30, 0, 0, time.UTC)
	if !monthFirst.Equal(want) {
		t.Errorf("got %v, want %v", monthFirst, want)
	}
}

func TestSmartAzimuth(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"N", 0},
		{"SSE", 157.5},
		{"360", 0},
		{"90", 90},
	}
	for _, c := range cases {
		got, err := SmartAzimuth(c.in)
		if err != nil {
			t.Fatalf("SmartAzimuth(%q) unexpected error: %v", c.in, err)
		}
		if got == nil || *got != c.want {
			t.Errorf("SmartAzimuth(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSmartAzimuthSpanishOeste(t *testing.T) {
	got, err := SmartAzimuth("O")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != 270 {
		t.Errorf("SmartAzimuth(%q) = %v, want 270 (west)", "O", got)
	}
}

func TestSafeFloatAndSafeInt(t *testing.T) {
	if v := SafeFloat("not-a-number"); v != nil {
		t.Errorf("SafeFloat(garbage) = %v, want nil", v)
	}
	if v := SafeFloat("3.14"); v == nil || *v != 3.14 {
		t.Errorf("SafeFloat(3.14) = %v, want 3.14", v)
	}
	if v := SafeInt("garbage"); v != nil {
		t.Errorf("SafeInt(garbage) = %v, want nil", v)
	}
}
