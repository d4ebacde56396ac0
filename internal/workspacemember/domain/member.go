package domain

import (
	"time"

	"canopy/backend/internal/apperror"
)

// Role is a workspace member's role within the workspace.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// ParseRole validates raw against the fixed role set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleOwner, RoleMember:
		return Role(raw), nil
	}
	return "", apperror.Operational(
		"canopy.1.error.workspace_member.invalid_role",
		"invalid-role",
		400,
		"Invalid workspace member role",
	).WithMeta("role", raw)
}

func (r Role) String() string { return string(r) }

// WorkspaceMember records a user's membership in a workspace.
type WorkspaceMember struct {
	ID          string
	WorkspaceID string
	UserID      string
	Role        Role
	JoinedAt    time.Time
	UpdatedAt   time.Time
}

// ErrMemberNotFound is returned when the membership record does not exist.
func ErrMemberNotFound() *apperror.Error {
	return apperror.Operational(
		"canopy.1.error.workspace_member.workspace_member_not_found",
		"workspace-member-not-found",
		404,
		"Workspace member not found",
	)
}

// ErrUnauthorizedMemberOperation is returned when the requester is not a
// member of the workspace it is operating on.
func ErrUnauthorizedMemberOperation() *apperror.Error {
	return apperror.Operational(
		"canopy.1.error.workspace_member.unauthorized_workspace_member_operation",
		"unauthorized-workspace-member-operation",
		403,
		"Unauthorized workspace member operation",
	)
}
