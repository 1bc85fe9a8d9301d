package service

import (
	"math"
	"time"
)

// Pricing constants, in currency units. The rate card is fixed platform-wide;
// there is no surge or per-vehicle pricing.
const (
	BaseFare   int64 = 50
	PerKmRate  int64 = 5
	PerDayRate int64 = 200
)

// Quote computes the final price for a booking:
//
//	price = BaseFare + distanceKm*PerKmRate + days*PerDayRate
//
// The result is rounded to a whole currency unit. It is pure and
// deterministic; the engine calls it exactly once per booking, at creation,
// and the result becomes the booking's immutable final price.
func Quote(distanceKm float64, days int) (int64, error) {
	if distanceKm <= 0 {
		return 0, ErrInvalidDistance
	}
	if days < 1 {
		return 0, ErrInvalidDays
	}

	price := float64(BaseFare) + distanceKm*float64(PerKmRate) + float64(days)*float64(PerDayRate)
	return int64(math.Round(price)), nil
}

// DeriveDays returns the whole-day span from the booking date to the end
// reference (the trip's end date), rounded up, with a minimum of one day.
func DeriveDays(bookingDate, endRef time.Time) int {
	span := endRef.Sub(bookingDate)
	days := int(math.Ceil(span.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
