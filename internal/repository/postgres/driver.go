package postgres

import (
	"context"
	"database/sql"
	"errors"

	"urbancab/internal/domain"
	"urbancab/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

const driverColumns = `id, user_id, dealer_id, license_number, license_expiry, vehicle_number, vehicle_type, total_earnings, total_payouts, is_active, created_at`

// Create adds a new driver profile.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	var dealerID sql.NullString
	if driver.DealerID != "" {
		dealerID = sql.NullString{String: driver.DealerID, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.UserID,
		dealerID,
		driver.LicenseNumber,
		driver.LicenseExpiry,
		driver.VehicleNumber,
		driver.VehicleType,
		driver.TotalEarnings,
		driver.TotalPayouts,
		driver.IsActive,
		driver.CreatedAt,
	)

	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetByUserID retrieves the driver profile owned by a user account.
func (r *DriverRepository) GetByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE user_id = $1`
	return r.get(ctx, query, userID)
}

// ListActive retrieves active drivers, optionally filtered by vehicle type.
func (r *DriverRepository) ListActive(ctx context.Context, vehicleType domain.VehicleType) ([]*domain.Driver, error) {
	if vehicleType != "" {
		query := `SELECT ` + driverColumns + ` FROM drivers WHERE is_active = TRUE AND vehicle_type = $1 ORDER BY created_at DESC`
		return r.list(ctx, query, vehicleType)
	}
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE is_active = TRUE ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListByDealer retrieves the drivers belonging to a dealer's fleet.
func (r *DriverRepository) ListByDealer(ctx context.Context, dealerID string) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE dealer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, dealerID)
}

// AddPayout increments a driver's running payout total.
func (r *DriverRepository) AddPayout(ctx context.Context, id string, amount int64) error {
	query := `UPDATE drivers SET total_payouts = total_payouts + $1 WHERE id = $2`
	return r.increment(ctx, query, id, amount)
}

// AddEarnings increments a driver's running earnings total.
func (r *DriverRepository) AddEarnings(ctx context.Context, id string, amount int64) error {
	query := `UPDATE drivers SET total_earnings = total_earnings + $1 WHERE id = $2`
	return r.increment(ctx, query, id, amount)
}

func (r *DriverRepository) increment(ctx context.Context, query, id string, amount int64) error {
	result, err := r.q.ExecContext(ctx, query, amount, id)
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

func (r *DriverRepository) get(ctx context.Context, query string, arg any) (*domain.Driver, error) {
	driver, err := scanDriver(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return driver, nil
}

func (r *DriverRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Driver, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	return drivers, rows.Err()
}

func scanDriver(row rowScanner) (*domain.Driver, error) {
	var driver domain.Driver
	var dealerID sql.NullString

	err := row.Scan(
		&driver.ID,
		&driver.UserID,
		&dealerID,
		&driver.LicenseNumber,
		&driver.LicenseExpiry,
		&driver.VehicleNumber,
		&driver.VehicleType,
		&driver.TotalEarnings,
		&driver.TotalPayouts,
		&driver.IsActive,
		&driver.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dealerID.Valid {
		driver.DealerID = dealerID.String
	}

	return &driver, nil
}
