package postgres

import (
	"context"
	"database/sql"
	"errors"

	"urbancab/internal/domain"
	"urbancab/internal/repository"
)

// DealerRepository is a PostgreSQL implementation of repository.DealerRepository.
type DealerRepository struct {
	q Querier
}

// NewDealerRepository creates a new PostgreSQL dealer repository.
func NewDealerRepository(db *sql.DB) *DealerRepository {
	return &DealerRepository{q: db}
}

// NewDealerRepositoryWithTx creates a dealer repository using a transaction.
func NewDealerRepositoryWithTx(tx *sql.Tx) *DealerRepository {
	return &DealerRepository{q: tx}
}

const dealerColumns = `id, user_id, company_name, registration, tax_id, bank_account, total_earnings, total_payouts, created_at`

// Create adds a new dealer profile.
func (r *DealerRepository) Create(ctx context.Context, dealer *domain.Dealer) error {
	query := `
		INSERT INTO dealers (` + dealerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		dealer.ID,
		dealer.UserID,
		dealer.CompanyName,
		dealer.Registration,
		dealer.TaxID,
		dealer.BankAccount,
		dealer.TotalEarnings,
		dealer.TotalPayouts,
		dealer.CreatedAt,
	)

	return err
}

// GetByID retrieves a dealer by ID.
func (r *DealerRepository) GetByID(ctx context.Context, id string) (*domain.Dealer, error) {
	query := `SELECT ` + dealerColumns + ` FROM dealers WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetByUserID retrieves the dealer profile owned by a user account.
func (r *DealerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Dealer, error) {
	query := `SELECT ` + dealerColumns + ` FROM dealers WHERE user_id = $1`
	return r.get(ctx, query, userID)
}

// AddPayout increments a dealer's running payout total.
func (r *DealerRepository) AddPayout(ctx context.Context, id string, amount int64) error {
	query := `UPDATE dealers SET total_payouts = total_payouts + $1 WHERE id = $2`
	return r.increment(ctx, query, id, amount)
}

// AddEarnings increments a dealer's running earnings total.
func (r *DealerRepository) AddEarnings(ctx context.Context, id string, amount int64) error {
	query := `UPDATE dealers SET total_earnings = total_earnings + $1 WHERE id = $2`
	return r.increment(ctx, query, id, amount)
}

func (r *DealerRepository) increment(ctx context.Context, query, id string, amount int64) error {
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

func (r *DealerRepository) get(ctx context.Context, query string, arg any) (*domain.Dealer, error) {
	var dealer domain.Dealer
	err := r.q.QueryRowContext(ctx, query, arg).Scan(
		&dealer.ID,
		&dealer.UserID,
		&dealer.CompanyName,
		&dealer.Registration,
		&dealer.TaxID,
		&dealer.BankAccount,
		&dealer.TotalEarnings,
		&dealer.TotalPayouts,
		&dealer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &dealer, nil
}
