package repository

import (
	"context"

	"urbancab/internal/domain"
)

// DealerRepository defines the persistence operations for dealer profiles.
type DealerRepository interface {
	// Create adds a new dealer profile.
	Create(ctx context.Context, dealer *domain.Dealer) error

	// GetByID retrieves a dealer by ID.
	GetByID(ctx context.Context, id string) (*domain.Dealer, error)

	// GetByUserID retrieves the dealer profile owned by a user account.
	GetByUserID(ctx context.Context, userID string) (*domain.Dealer, error)

	// AddPayout increments a dealer's running payout total.
	AddPayout(ctx context.Context, id string, amount int64) error

	// AddEarnings increments a dealer's running earnings total.
	AddEarnings(ctx context.Context, id string, amount int64) error
}
