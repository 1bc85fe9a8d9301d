package repository

import (
	"context"

	"urbancab/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// ListByCustomer retrieves the trips owned by a customer, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Trip, error)

	// UpdateStatus updates the status of a trip.
	UpdateStatus(ctx context.Context, id string, status domain.TripStatus) error
}
