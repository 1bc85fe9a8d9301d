package postgres

import (
	"context"
	"database/sql"
	"errors"

	"urbancab/internal/domain"
	"urbancab/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
//
// Assign and UpdateStatus guard their writes with the expected current state
// in the WHERE clause, so concurrent mutations resolve to exactly one winner
// without holding row locks across requests.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `id, trip_id, customer_id, driver_id, dealer_id, pickup_location, dropoff_location, booking_date, estimated_km, total_days, final_price, status, payment_status, created_at`

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	var driverID sql.NullString
	if booking.DriverID != "" {
		driverID = sql.NullString{String: booking.DriverID, Valid: true}
	}

	var dealerID sql.NullString
	if booking.DealerID != "" {
		dealerID = sql.NullString{String: booking.DealerID, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.TripID,
		booking.CustomerID,
		driverID,
		dealerID,
		booking.PickupLocation,
		booking.DropoffLocation,
		booking.BookingDate,
		booking.EstimatedKm,
		booking.TotalDays,
		booking.FinalPrice,
		booking.Status,
		booking.PaymentStatus,
		booking.CreatedAt,
	)

	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return booking, nil
}

// ListByCustomer retrieves bookings created by a customer, newest first.
func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, customerID)
}

// ListByDriver retrieves bookings assigned to a driver, newest first.
func (r *BookingRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE driver_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, driverID)
}

// ListByDealer retrieves bookings served by a dealer's fleet, newest first.
func (r *BookingRepository) ListByDealer(ctx context.Context, dealerID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE dealer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, dealerID)
}

// ListAll retrieves all bookings, newest first.
func (r *BookingRepository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC LIMIT 100`
	return r.list(ctx, query)
}

// ListUnassigned retrieves PENDING bookings with no driver, newest first.
func (r *BookingRepository) ListUnassigned(ctx context.Context) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND driver_id IS NULL ORDER BY created_at DESC`
	return r.list(ctx, query, domain.BookingStatusPending)
}

// Assign sets driver and dealer on a PENDING, unassigned booking and advances
// it to ACCEPTED in one atomic step.
func (r *BookingRepository) Assign(ctx context.Context, bookingID, driverID, dealerID string) error {
	query := `
		UPDATE bookings
		SET driver_id = $1, dealer_id = $2, status = $3
		WHERE id = $4 AND status = $5 AND driver_id IS NULL
	`

	var dealer sql.NullString
	if dealerID != "" {
		dealer = sql.NullString{String: dealerID, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		driverID,
		dealer,
		domain.BookingStatusAccepted,
		bookingID,
		domain.BookingStatusPending,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return r.missOrConflict(ctx, bookingID)
	}

	return nil
}

// UpdateStatus transitions a booking from one status to another.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.q.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return r.missOrConflict(ctx, id)
	}

	return nil
}

// UpdatePaymentStatus updates the settlement flag of a booking.
func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	query := `UPDATE bookings SET payment_status = $1 WHERE id = $2`

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

// missOrConflict distinguishes "no such booking" from "booking exists but the
// guarded write lost" after a zero-row update.
func (r *BookingRepository) missOrConflict(ctx context.Context, id string) error {
	var exists bool
	err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var driverID sql.NullString
	var dealerID sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.TripID,
		&booking.CustomerID,
		&driverID,
		&dealerID,
		&booking.PickupLocation,
		&booking.DropoffLocation,
		&booking.BookingDate,
		&booking.EstimatedKm,
		&booking.TotalDays,
		&booking.FinalPrice,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		booking.DriverID = driverID.String
	}
	if dealerID.Valid {
		booking.DealerID = dealerID.String
	}

	return &booking, nil
}
