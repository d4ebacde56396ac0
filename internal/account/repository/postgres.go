package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"canopy/backend/internal/account/domain"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns an account repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const accountColumns = `id, user_id, provider, provider_account_id, refresh_token, access_token, expires_at, token_type, password_hash, created_at, updated_at`

// GetAccountByID returns the account for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetAccountByProviderAndProviderAccountID returns the account for the
// given provider identity, or nil if not found.
func (r *PostgresRepository) GetAccountByProviderAndProviderAccountID(ctx context.Context, provider domain.Provider, providerAccountID string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE provider = $1 AND provider_account_id = $2`
	return scanAccount(r.pool.QueryRow(ctx, query, string(provider), providerAccountID))
}

// CreateAccount persists the account. The account must have ID set.
func (r *PostgresRepository) CreateAccount(ctx context.Context, a *domain.Account) error {
	const query = `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.UserID, string(a.Provider), a.ProviderAccountID,
		a.RefreshToken, a.AccessToken, a.ExpiresAt, a.TokenType, a.PasswordHash,
		a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var provider string
	err := row.Scan(
		&a.ID, &a.UserID, &provider, &a.ProviderAccountID,
		&a.RefreshToken, &a.AccessToken, &a.ExpiresAt, &a.TokenType, &a.PasswordHash,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.Provider = domain.Provider(provider)
	return &a, nil
}
