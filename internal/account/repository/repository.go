package repository

import (
	"context"

	"canopy/backend/internal/account/domain"
)

// Repository defines persistence for accounts.
type Repository interface {
	GetAccountByID(ctx context.Context, id string) (*domain.Account, error)
	GetAccountByProviderAndProviderAccountID(ctx context.Context, provider domain.Provider, providerAccountID string) (*domain.Account, error)
	CreateAccount(ctx context.Context, a *domain.Account) error
}
