package repository

import (
	"context"

	"urbancab/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
//
// Assign and UpdateStatus are compare-and-set operations: they only apply
// when the booking's current state matches the expected state, and return
// ErrConflict otherwise. All booking mutations go through them so that
// concurrent callers resolve deterministically to exactly one winner.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// ListByCustomer retrieves bookings created by a customer, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error)

	// ListByDriver retrieves bookings assigned to a driver, newest first.
	ListByDriver(ctx context.Context, driverID string) ([]*domain.Booking, error)

	// ListByDealer retrieves bookings served by a dealer's fleet, newest first.
	ListByDealer(ctx context.Context, dealerID string) ([]*domain.Booking, error)

	// ListAll retrieves all bookings, newest first.
	ListAll(ctx context.Context) ([]*domain.Booking, error)

	// ListUnassigned retrieves PENDING bookings with no driver, newest first.
	ListUnassigned(ctx context.Context) ([]*domain.Booking, error)

	// Assign sets driver and dealer on a PENDING, unassigned booking and
	// advances it to ACCEPTED in one atomic step. Returns ErrConflict if the
	// booking is no longer PENDING or already carries a driver.
	Assign(ctx context.Context, bookingID, driverID, dealerID string) error

	// UpdateStatus transitions a booking from one status to another.
	// Returns ErrConflict if the booking is not currently in `from`.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error

	// UpdatePaymentStatus updates the settlement flag of a booking.
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}
