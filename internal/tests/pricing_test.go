package tests

import (
	"errors"
	"testing"
	"time"

	"urbancab/internal/service"
)

func TestQuote_Formula(t *testing.T) {
	cases := []struct {
		name     string
		km       float64
		days     int
		expected int64
	}{
		{"short airport run", 20, 3, 750},
		{"single day minimum", 1, 1, 255},
		{"fractional distance rounds", 10.4, 2, 502},
		{"long haul", 250, 7, 2700},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price, err := service.Quote(tc.km, tc.days)
			if err != nil {
				t.Fatalf("quote error: %v", err)
			}
			if price != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, price)
			}
		})
	}
}

func TestQuote_Deterministic(t *testing.T) {
	first, err := service.Quote(33.3, 4)
	if err != nil {
		t.Fatalf("quote error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := service.Quote(33.3, 4)
		if err != nil {
			t.Fatalf("quote error: %v", err)
		}
		if again != first {
			t.Fatalf("quote not deterministic: %d vs %d", first, again)
		}
	}
}

func TestQuote_RejectsInvalidInputs(t *testing.T) {
	if _, err := service.Quote(0, 3); !errors.Is(err, service.ErrInvalidDistance) {
		t.Errorf("zero distance: expected ErrInvalidDistance, got %v", err)
	}
	if _, err := service.Quote(-5, 3); !errors.Is(err, service.ErrInvalidDistance) {
		t.Errorf("negative distance: expected ErrInvalidDistance, got %v", err)
	}
	if _, err := service.Quote(10, 0); !errors.Is(err, service.ErrInvalidDays) {
		t.Errorf("zero days: expected ErrInvalidDays, got %v", err)
	}
}

func TestDeriveDays_CeilsAndClamps(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Two and a half days rounds up to three.
	if days := service.DeriveDays(base, base.Add(60*time.Hour)); days != 3 {
		t.Errorf("expected 3 days, got %d", days)
	}

	// Booking on the trip's last day still counts as one day.
	if days := service.DeriveDays(base, base.Add(2*time.Hour)); days != 1 {
		t.Errorf("expected 1 day, got %d", days)
	}

	// End before booking clamps to one.
	if days := service.DeriveDays(base, base.Add(-24*time.Hour)); days != 1 {
		t.Errorf("expected 1 day, got %d", days)
	}
}
