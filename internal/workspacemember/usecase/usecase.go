// Package usecase wires the workspace-member module's operations into
// the authorize-then-handle contract. The add operation is also invoked
// internally (workspace creation, adding a user to a workspace) through
// an already-authorized session, which skips the membership gate.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"canopy/backend/internal/auth"
	"canopy/backend/internal/auth/session"
	"canopy/backend/internal/dispatch"
	"canopy/backend/internal/workspacemember/domain"
	"canopy/backend/internal/workspacemember/repository"
)

// Deps holds the workspace-member module's external collaborators.
type Deps struct {
	Repository repository.Repository
}

// requireMembership is the shared gate for member operations: the session
// must be a signed-in user who is itself a member of the workspace.
func requireMembership(ctx context.Context, deps Deps, sess *session.Session, workspaceID string) error {
	if !sess.IsAuthenticated() {
		return auth.ErrUnauthenticated()
	}
	isMember, err := deps.Repository.IsMember(ctx, workspaceID, sess.DistinctID())
	if err != nil {
		return err
	}
	if !isMember {
		return domain.ErrUnauthorizedMemberOperation()
	}
	return nil
}

type AddWorkspaceMemberParams struct {
	WorkspaceID string
	UserID      string
	Role        domain.Role
}

func authorizeAddWorkspaceMember(ctx context.Context, p AddWorkspaceMemberParams, deps Deps, sess *session.Session) error {
	return requireMembership(ctx, deps, sess, p.WorkspaceID)
}

// addWorkspaceMember is idempotent: an existing member with the same role
// is a no-op, an existing member with a different role gets the new role,
// and a missing member is inserted.
func addWorkspaceMember(ctx context.Context, p AddWorkspaceMemberParams, deps Deps) (struct{}, error) {
	existing, err := deps.Repository.GetMember(ctx, p.WorkspaceID, p.UserID)
	if err != nil {
		return struct{}{}, err
	}
	if existing != nil {
		if existing.Role == p.Role {
			return struct{}{}, nil
		}
		return struct{}{}, deps.Repository.UpdateMemberRole(ctx, p.WorkspaceID, p.UserID, p.Role)
	}
	now := time.Now().UTC()
	return struct{}{}, deps.Repository.AddMember(ctx, &domain.WorkspaceMember{
		ID:          uuid.NewString(),
		WorkspaceID: p.WorkspaceID,
		UserID:      p.UserID,
		Role:        p.Role,
		JoinedAt:    now,
		UpdatedAt:   now,
	})
}

// NewAddWorkspaceMember returns the add-member use case.
func NewAddWorkspaceMember(deps Deps) dispatch.UseCase[AddWorkspaceMemberParams, struct{}] {
	return dispatch.NewUseCase(authorizeAddWorkspaceMember, addWorkspaceMember, deps)
}

type RemoveWorkspaceMemberParams struct {
	WorkspaceID string
	UserID      string
}

func authorizeRemoveWorkspaceMember(ctx context.Context, p RemoveWorkspaceMemberParams, deps Deps, sess *session.Session) error {
	return requireMembership(ctx, deps, sess, p.WorkspaceID)
}

func removeWorkspaceMember(ctx context.Context, p RemoveWorkspaceMemberParams, deps Deps) (struct{}, error) {
	member, err := deps.Repository.GetMember(ctx, p.WorkspaceID, p.UserID)
	if err != nil {
		return struct{}{}, err
	}
	if member == nil {
		return struct{}{}, domain.ErrMemberNotFound()
	}
	return struct{}{}, deps.Repository.RemoveMember(ctx, p.WorkspaceID, p.UserID)
}

// NewRemoveWorkspaceMember returns the remove-member use case.
func NewRemoveWorkspaceMember(deps Deps) dispatch.UseCase[RemoveWorkspaceMemberParams, struct{}] {
	return dispatch.NewUseCase(authorizeRemoveWorkspaceMember, removeWorkspaceMember, deps)
}

type GetWorkspaceMembersParams struct {
	WorkspaceID string
}

func authorizeGetWorkspaceMembers(ctx context.Context, p GetWorkspaceMembersParams, deps Deps, sess *session.Session) error {
	return requireMembership(ctx, deps, sess, p.WorkspaceID)
}

func getWorkspaceMembers(ctx context.Context, p GetWorkspaceMembersParams, deps Deps) ([]*domain.WorkspaceMember, error) {
	return deps.Repository.GetMembersByWorkspaceID(ctx, p.WorkspaceID)
}

// NewGetWorkspaceMembers returns the list-members use case.
func NewGetWorkspaceMembers(deps Deps) dispatch.UseCase[GetWorkspaceMembersParams, []*domain.WorkspaceMember] {
	return dispatch.NewUseCase(authorizeGetWorkspaceMembers, getWorkspaceMembers, deps)
}

type GetMemberWorkspacesParams struct {
	UserID string
}

func authorizeGetMemberWorkspaces(ctx context.Context, p GetMemberWorkspacesParams, deps Deps, sess *session.Session) error {
	if !sess.IsAuthenticated() {
		return auth.ErrUnauthenticated()
	}
	if !sess.IsUserWithID(p.UserID) {
		return domain.ErrUnauthorizedMemberOperation()
	}
	return nil
}

func getMemberWorkspaces(ctx context.Context, p GetMemberWorkspacesParams, deps Deps) ([]*domain.WorkspaceMember, error) {
	return deps.Repository.GetMembersByUserID(ctx, p.UserID)
}

// NewGetMemberWorkspaces returns the use case listing the membership
// records of a user, restricted to the user's own session.
func NewGetMemberWorkspaces(deps Deps) dispatch.UseCase[GetMemberWorkspacesParams, []*domain.WorkspaceMember] {
	return dispatch.NewUseCase(authorizeGetMemberWorkspaces, getMemberWorkspaces, deps)
}

type CheckWorkspaceMembershipParams struct {
	WorkspaceID string
	UserID      string
}

func authorizeCheckWorkspaceMembership(ctx context.Context, p CheckWorkspaceMembershipParams, deps Deps, sess *session.Session) error {
	if !sess.IsAuthenticated() {
		return auth.ErrUnauthenticated()
	}
	return nil
}

func checkWorkspaceMembership(ctx context.Context, p CheckWorkspaceMembershipParams, deps Deps) (bool, error) {
	return deps.Repository.IsMember(ctx, p.WorkspaceID, p.UserID)
}

// NewCheckWorkspaceMembership returns the membership-check use case.
func NewCheckWorkspaceMembership(deps Deps) dispatch.UseCase[CheckWorkspaceMembershipParams, bool] {
	return dispatch.NewUseCase(authorizeCheckWorkspaceMembership, checkWorkspaceMembership, deps)
}
