package repository

import (
	"context"

	"canopy/backend/internal/workspacemember/domain"
)

// Repository defines persistence for workspace membership records.
type Repository interface {
	GetMember(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error)
	GetMembersByWorkspaceID(ctx context.Context, workspaceID string) ([]*domain.WorkspaceMember, error)
	GetMembersByUserID(ctx context.Context, userID string) ([]*domain.WorkspaceMember, error)
	IsMember(ctx context.Context, workspaceID, userID string) (bool, error)
	AddMember(ctx context.Context, m *domain.WorkspaceMember) error
	UpdateMemberRole(ctx context.Context, workspaceID, userID string, role domain.Role) error
	RemoveMember(ctx context.Context, workspaceID, userID string) error
}
