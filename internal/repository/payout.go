package repository

import (
	"context"

	"urbancab/internal/domain"
)

// PayoutRepository defines the persistence operations for payouts.
type PayoutRepository interface {
	// Create persists a new payout. Returns ErrDuplicate if a payout already
	// exists for the same booking.
	Create(ctx context.Context, payout *domain.Payout) error

	// GetByID retrieves a payout by ID.
	GetByID(ctx context.Context, id string) (*domain.Payout, error)

	// GetByBookingID retrieves the payout derived from a booking.
	// Returns nil, nil when no payout exists yet.
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Payout, error)

	// ListAll retrieves all payouts, newest first.
	ListAll(ctx context.Context) ([]*domain.Payout, error)

	// ListByDealer retrieves payouts owed to a dealer, newest first.
	ListByDealer(ctx context.Context, dealerID string) ([]*domain.Payout, error)

	// ListByDriver retrieves payouts owed to a driver, newest first.
	ListByDriver(ctx context.Context, driverID string) ([]*domain.Payout, error)

	// MarkProcessed transitions a payout from PENDING to PROCESSED, stamping
	// the processing time and the admin who ran it. Returns ErrConflict if
	// the payout is not currently PENDING.
	MarkProcessed(ctx context.Context, id, adminID string) error
}
