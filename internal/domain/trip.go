package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusActive    TripStatus = "ACTIVE"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

// Trip represents a customer's planned multi-day visit to a city.
// Bookings are made under a trip; the trip itself carries no money.
type Trip struct {
	ID           string
	CustomerID   string
	City         string
	BaseLocation string
	StartDate    time.Time
	EndDate      time.Time
	Purpose      string
	Notes        string
	Status       TripStatus
	CreatedAt    time.Time
}
