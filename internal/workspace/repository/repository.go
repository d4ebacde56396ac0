package repository

import (
	"context"

	"canopy/backend/internal/workspace/domain"
)

// Repository defines persistence for workspaces.
type Repository interface {
	GetWorkspaceByID(ctx context.Context, id string) (*domain.Workspace, error)
	GetWorkspacesByUserID(ctx context.Context, userID string) ([]*domain.Workspace, error)
	CreateWorkspace(ctx context.Context, w *domain.Workspace) error
	// AddUserToWorkspace appends the user to the workspace's member list
	// in a single atomic update.
	AddUserToWorkspace(ctx context.Context, workspaceID, userID string) error
}
