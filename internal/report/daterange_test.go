package report

import (
	"errors"
	"testing"
	"time"
)

func TestParseRange(t *testing.T) {
	rng, err := ParseRange("2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rng.Start != "2024-03-01" || rng.End != "2024-03-31" {
		t.Errorf("unexpected range: %+v", rng)
	}

	// Single-day ranges are allowed.
	if _, err := ParseRange("2024-03-15", "2024-03-15"); err != nil {
		t.Errorf("single-day range rejected: %v", err)
	}
}

func TestParseRangeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		field string
	}{
		{"malformed start", "03/01/2024", "2024-03-31", "start_date"},
		{"malformed end", "2024-03-01", "tomorrow", "end_date"},
		{"inverted", "2024-03-31", "2024-03-01", "date_range"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRange(tc.start, tc.end)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestResolveRangePresets(t *testing.T) {
	// A Wednesday in mid March.
	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

	weekly := ResolveRange("weekly", now)
	if weekly.Start != "2024-03-11" || weekly.End != "2024-03-17" {
		t.Errorf("weekly: got %+v", weekly)
	}

	monthly := ResolveRange("monthly", now)
	if monthly.Start != "2024-03-01" || monthly.End != "2024-03-31" {
		t.Errorf("monthly: got %+v", monthly)
	}

	yearly := ResolveRange("yearly", now)
	if yearly.Start != "2024-01-01" || yearly.End != "2024-12-31" {
		t.Errorf("yearly: got %+v", yearly)
	}

	// Unknown presets default to the yearly range.
	if got := ResolveRange("quarterly", now); got != yearly {
		t.Errorf("unknown preset: got %+v, want %+v", got, yearly)
	}
}

func TestResolveRangeWeeklyOnSunday(t *testing.T) {
	// Sundays belong to the week that started the previous Monday.
	sunday := time.Date(2024, 3, 17, 9, 0, 0, 0, time.UTC)
	rng := ResolveRange("weekly", sunday)
	if rng.Start != "2024-03-11" || rng.End != "2024-03-17" {
		t.Errorf("got %+v", rng)
	}
}
