package repository

import (
	"context"

	"urbancab/internal/domain"
)

// DriverRepository defines the persistence operations for driver profiles.
type DriverRepository interface {
	// Create adds a new driver profile.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByUserID retrieves the driver profile owned by a user account.
	GetByUserID(ctx context.Context, userID string) (*domain.Driver, error)

	// ListActive retrieves active drivers, optionally filtered by vehicle type.
	ListActive(ctx context.Context, vehicleType domain.VehicleType) ([]*domain.Driver, error)

	// ListByDealer retrieves the drivers belonging to a dealer's fleet.
	ListByDealer(ctx context.Context, dealerID string) ([]*domain.Driver, error)

	// AddPayout increments a driver's running payout total.
	AddPayout(ctx context.Context, id string, amount int64) error

	// AddEarnings increments a driver's running earnings total.
	AddEarnings(ctx context.Context, id string, amount int64) error
}
