// Package usecase wires the user module's operations into the
// authorize-then-handle contract.
package usecase

import (
	"context"
	"time"

	"canopy/backend/internal/auth"
	"canopy/backend/internal/auth/session"
	"canopy/backend/internal/dispatch"
	"canopy/backend/internal/user/domain"
	"canopy/backend/internal/user/repository"
)

// Deps holds the user module's external collaborators.
type Deps struct {
	Repository repository.Repository
}

// CreateUserParams carries the profile the sign-in exchange derived from
// the identity provider. UserID is assigned by the caller so the account
// record and the user record agree on it.
type CreateUserParams struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

func authorizeCreateUser(ctx context.Context, p CreateUserParams, deps Deps, sess *session.Session) error {
	return nil
}

func createUser(ctx context.Context, p CreateUserParams, deps Deps) (*domain.User, error) {
	now := time.Now().UTC()
	u := &domain.User{
		ID:        p.UserID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Picture:   p.Picture,
		Email:     p.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := deps.Repository.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// NewCreateUser returns the create-user use case.
func NewCreateUser(deps Deps) dispatch.UseCase[CreateUserParams, *domain.User] {
	return dispatch.NewUseCase(authorizeCreateUser, createUser, deps)
}

type GetUserByIDParams struct {
	UserID string
}

func authorizeGetUserByID(ctx context.Context, p GetUserByIDParams, deps Deps, sess *session.Session) error {
	if !sess.IsAuthenticated() {
		return auth.ErrUnauthenticated()
	}
	if !sess.IsUserWithID(p.UserID) {
		return domain.ErrCanNotAccessUser()
	}
	return nil
}

func getUserByID(ctx context.Context, p GetUserByIDParams, deps Deps) (*domain.User, error) {
	u, err := deps.Repository.GetUserByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound()
	}
	return u, nil
}

// NewGetUserByID returns the get-user use case. Sessions can only read
// their own profile.
func NewGetUserByID(deps Deps) dispatch.UseCase[GetUserByIDParams, *domain.User] {
	return dispatch.NewUseCase(authorizeGetUserByID, getUserByID, deps)
}
