package repository

import (
	"context"

	"canopy/backend/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
}
