package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusAccepted   BookingStatus = "ACCEPTED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// PaymentStatus is the settlement axis of a booking, independent of the
// booking lifecycle status. Bookings may complete before payment settles.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Booking represents one taxi assignment under a trip.
//
// Invariant: DriverID is set if and only if the booking has left PENDING
// through assignment; a PENDING booking never carries a driver.
// FinalPrice is computed once at creation and never recomputed.
type Booking struct {
	ID              string
	TripID          string
	CustomerID      string
	DriverID        string // empty until assigned
	DealerID        string // derived from the assigned driver's fleet
	PickupLocation  string
	DropoffLocation string
	BookingDate     time.Time
	EstimatedKm     float64
	TotalDays       int
	FinalPrice      int64 // currency units, immutable once set
	Status          BookingStatus
	PaymentStatus   PaymentStatus
	CreatedAt       time.Time
}

// Assigned reports whether a driver has been set on the booking.
func (b *Booking) Assigned() bool {
	return b.DriverID != ""
}
