package domain

import "time"

// PayoutStatus represents the current status of a payout.
type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "PENDING"
	PayoutStatusProcessed PayoutStatus = "PROCESSED"
	PayoutStatusFailed    PayoutStatus = "FAILED"
)

// Payout is the settlement record splitting a completed, paid booking's
// price among platform, dealer, and driver. At most one exists per booking.
//
// Invariant: AdminCommission + DealerAmount + DriverAmount == BookingPrice.
// The driver amount is always the exact remainder after the rounded
// commission and dealer cuts, so the parts reconcile to the price.
type Payout struct {
	ID              string
	BookingID       string
	BookingPrice    int64 // copied from the booking for audit independence
	AdminCommission int64
	DealerAmount    int64
	DriverAmount    int64
	DealerID        string // empty when the driver is independent
	DriverID        string
	ProcessedBy     string // admin user who processed it
	Status          PayoutStatus
	ProcessedAt     time.Time // zero until PROCESSED
	CreatedAt       time.Time
}
