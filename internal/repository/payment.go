package repository

import (
	"context"

	"urbancab/internal/domain"
)

// PaymentRepository defines the persistence operations for payment records.
type PaymentRepository interface {
	// Create persists a new payment record.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByBookingID retrieves the payment recorded for a booking.
	// Returns nil, nil when no payment exists.
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error)

	// ListByCustomer retrieves payments made by a customer, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Payment, error)

	// ListAll retrieves all payments, newest first.
	ListAll(ctx context.Context) ([]*domain.Payment, error)
}
