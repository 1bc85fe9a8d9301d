package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"urbancab/internal/domain"
	"urbancab/internal/repository"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// PayoutRepository is a PostgreSQL implementation of repository.PayoutRepository.
//
// The payouts table carries a unique constraint on booking_id; Create maps
// violations of it to ErrDuplicate so allocation stays idempotent even when
// two triggers race.
type PayoutRepository struct {
	q Querier
}

// NewPayoutRepository creates a new PostgreSQL payout repository.
func NewPayoutRepository(db *sql.DB) *PayoutRepository {
	return &PayoutRepository{q: db}
}

// NewPayoutRepositoryWithTx creates a payout repository using a transaction.
func NewPayoutRepositoryWithTx(tx *sql.Tx) *PayoutRepository {
	return &PayoutRepository{q: tx}
}

const payoutColumns = `id, booking_id, booking_price, admin_commission, dealer_amount, driver_amount, dealer_id, driver_id, processed_by, status, processed_at, created_at`

// Create persists a new payout.
func (r *PayoutRepository) Create(ctx context.Context, payout *domain.Payout) error {
	query := `
		INSERT INTO payouts (` + payoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var dealerID sql.NullString
	if payout.DealerID != "" {
		dealerID = sql.NullString{String: payout.DealerID, Valid: true}
	}

	var processedBy sql.NullString
	if payout.ProcessedBy != "" {
		processedBy = sql.NullString{String: payout.ProcessedBy, Valid: true}
	}

	var processedAt sql.NullTime
	if !payout.ProcessedAt.IsZero() {
		processedAt = sql.NullTime{Time: payout.ProcessedAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		payout.ID,
		payout.BookingID,
		payout.BookingPrice,
		payout.AdminCommission,
		payout.DealerAmount,
		payout.DriverAmount,
		dealerID,
		payout.DriverID,
		processedBy,
		payout.Status,
		processedAt,
		payout.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}

	return nil
}

// GetByID retrieves a payout by ID.
func (r *PayoutRepository) GetByID(ctx context.Context, id string) (*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE id = $1`

	payout, err := scanPayout(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return payout, nil
}

// GetByBookingID retrieves the payout derived from a booking.
func (r *PayoutRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE booking_id = $1`

	payout, err := scanPayout(r.q.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return payout, nil
}

// ListAll retrieves all payouts, newest first.
func (r *PayoutRepository) ListAll(ctx context.Context) ([]*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts ORDER BY created_at DESC LIMIT 100`
	return r.list(ctx, query)
}

// ListByDealer retrieves payouts owed to a dealer, newest first.
func (r *PayoutRepository) ListByDealer(ctx context.Context, dealerID string) ([]*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE dealer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, dealerID)
}

// ListByDriver retrieves payouts owed to a driver, newest first.
func (r *PayoutRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE driver_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, driverID)
}

// MarkProcessed transitions a payout from PENDING to PROCESSED.
func (r *PayoutRepository) MarkProcessed(ctx context.Context, id, adminID string) error {
	query := `
		UPDATE payouts
		SET status = $1, processed_by = $2, processed_at = $3
		WHERE id = $4 AND status = $5
	`

	result, err := r.q.ExecContext(ctx, query,
		domain.PayoutStatusProcessed,
		adminID,
		time.Now().UTC(),
		id,
		domain.PayoutStatusPending,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		var exists bool
		err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM payouts WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}

	return nil
}

func (r *PayoutRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Payout, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []*domain.Payout
	for rows.Next() {
		payout, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, payout)
	}
	return payouts, rows.Err()
}

func scanPayout(row rowScanner) (*domain.Payout, error) {
	var payout domain.Payout
	var dealerID sql.NullString
	var processedBy sql.NullString
	var processedAt sql.NullTime

	err := row.Scan(
		&payout.ID,
		&payout.BookingID,
		&payout.BookingPrice,
		&payout.AdminCommission,
		&payout.DealerAmount,
		&payout.DriverAmount,
		&dealerID,
		&payout.DriverID,
		&processedBy,
		&payout.Status,
		&processedAt,
		&payout.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dealerID.Valid {
		payout.DealerID = dealerID.String
	}
	if processedBy.Valid {
		payout.ProcessedBy = processedBy.String
	}
	if processedAt.Valid {
		payout.ProcessedAt = processedAt.Time
	}

	return &payout, nil
}
