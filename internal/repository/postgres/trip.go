package postgres

import (
	"context"
	"database/sql"
	"errors"

	"urbancab/internal/domain"
	"urbancab/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, customer_id, city, base_location, start_date, end_date, purpose, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.CustomerID,
		trip.City,
		trip.BaseLocation,
		trip.StartDate,
		trip.EndDate,
		trip.Purpose,
		trip.Notes,
		trip.Status,
		trip.CreatedAt,
	)

	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `
		SELECT id, customer_id, city, base_location, start_date, end_date, purpose, notes, status, created_at
		FROM trips WHERE id = $1
	`

	var trip domain.Trip
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.CustomerID,
		&trip.City,
		&trip.BaseLocation,
		&trip.StartDate,
		&trip.EndDate,
		&trip.Purpose,
		&trip.Notes,
		&trip.Status,
		&trip.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &trip, nil
}

// ListByCustomer retrieves the trips owned by a customer, newest first.
func (r *TripRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Trip, error) {
	query := `
		SELECT id, customer_id, city, base_location, start_date, end_date, purpose, notes, status, created_at
		FROM trips WHERE customer_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		var trip domain.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.CustomerID,
			&trip.City,
			&trip.BaseLocation,
			&trip.StartDate,
			&trip.EndDate,
			&trip.Purpose,
			&trip.Notes,
			&trip.Status,
			&trip.CreatedAt,
		); err != nil {
			return nil, err
		}
		trips = append(trips, &trip)
	}
	return trips, rows.Err()
}

// UpdateStatus updates the status of a trip.
func (r *TripRepository) UpdateStatus(ctx context.Context, id string, status domain.TripStatus) error {
	query := `UPDATE trips SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
