// Package usecase wires the account module's operations into the
// authorize-then-handle contract. Account operations are only invoked by
// the sign-in exchange, which runs before a user session exists, so their
// authorize gates pass unconditionally.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"canopy/backend/internal/account/domain"
	"canopy/backend/internal/account/repository"
	"canopy/backend/internal/auth/session"
	"canopy/backend/internal/dispatch"
)

// Deps holds the account module's external collaborators.
type Deps struct {
	Repository repository.Repository
}

type CreateAccountParams struct {
	UserID            string
	Provider          domain.Provider
	ProviderAccountID string
	RefreshToken      string
	AccessToken       string
	ExpiresAt         *time.Time
	TokenType         string
	PasswordHash      string
}

func authorizeCreateAccount(ctx context.Context, p CreateAccountParams, deps Deps, sess *session.Session) error {
	return nil
}

func createAccount(ctx context.Context, p CreateAccountParams, deps Deps) (*domain.Account, error) {
	now := time.Now().UTC()
	a := &domain.Account{
		ID:                uuid.NewString(),
		UserID:            p.UserID,
		Provider:          p.Provider,
		ProviderAccountID: p.ProviderAccountID,
		RefreshToken:      p.RefreshToken,
		AccessToken:       p.AccessToken,
		ExpiresAt:         p.ExpiresAt,
		TokenType:         p.TokenType,
		PasswordHash:      p.PasswordHash,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := deps.Repository.CreateAccount(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// NewCreateAccount returns the create-account use case.
func NewCreateAccount(deps Deps) dispatch.UseCase[CreateAccountParams, *domain.Account] {
	return dispatch.NewUseCase(authorizeCreateAccount, createAccount, deps)
}

type GetAccountByProviderAndProviderAccountIDParams struct {
	Provider          domain.Provider
	ProviderAccountID string
}

func authorizeGetAccountByProviderAndProviderAccountID(ctx context.Context, p GetAccountByProviderAndProviderAccountIDParams, deps Deps, sess *session.Session) error {
	return nil
}

func getAccountByProviderAndProviderAccountID(ctx context.Context, p GetAccountByProviderAndProviderAccountIDParams, deps Deps) (*domain.Account, error) {
	return deps.Repository.GetAccountByProviderAndProviderAccountID(ctx, p.Provider, p.ProviderAccountID)
}

// NewGetAccountByProviderAndProviderAccountID returns the provider-identity
// lookup use case. A missing account is (nil, nil), not an error.
func NewGetAccountByProviderAndProviderAccountID(deps Deps) dispatch.UseCase[GetAccountByProviderAndProviderAccountIDParams, *domain.Account] {
	return dispatch.NewUseCase(authorizeGetAccountByProviderAndProviderAccountID, getAccountByProviderAndProviderAccountID, deps)
}
