package domain

import (
	"slices"
	"time"

	"canopy/backend/internal/apperror"
)

// Workspace is a named collaboration space. UserIDs is the denormalized
// member list the authorize gates check against; the workspace-member
// module keeps the per-member role records.
type Workspace struct {
	ID        string
	Name      string
	UserIDs   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasUser reports whether the user is in the workspace's member list.
func (w *Workspace) HasUser(userID string) bool {
	return slices.Contains(w.UserIDs, userID)
}

// ErrWorkspaceNotFound is returned when the workspace does not exist.
func ErrWorkspaceNotFound() *apperror.Error {
	return apperror.Operational(
		"canopy.1.error.workspace.workspace_not_found",
		"workspace-not-found",
		404,
		"Workspace not found",
	)
}

// ErrUnauthorizedWorkspaceAccess is returned when a session operates on a
// workspace it is not a member of.
func ErrUnauthorizedWorkspaceAccess(message string) *apperror.Error {
	if message == "" {
		message = "Unauthorized workspace access"
	}
	return apperror.Operational(
		"canopy.1.error.workspace.unauthorized_workspace_access",
		"unauthorized-workspace-access",
		403,
		message,
	)
}

// ErrUserAlreadyInWorkspace is returned when adding a user that is
// already in the workspace's member list.
func ErrUserAlreadyInWorkspace() *apperror.Error {
	return apperror.Operational(
		"canopy.1.error.workspace.user_already_in_workspace",
		"user-already-in-workspace",
		409,
		"User already in workspace",
	)
}
