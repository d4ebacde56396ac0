// Package usecase wires the workspace module's operations into the
// authorize-then-handle contract. Workspace creation and user addition
// also produce membership records; the transport boundary invokes the
// workspace-member module's use case with the same (already authorized)
// session once these handlers return.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"canopy/backend/internal/apperror"
	"canopy/backend/internal/auth"
	"canopy/backend/internal/auth/session"
	"canopy/backend/internal/dispatch"
	"canopy/backend/internal/workspace/domain"
	"canopy/backend/internal/workspace/repository"
)

// Deps holds the workspace module's external collaborators.
type Deps struct {
	Repository repository.Repository
}

type CreateWorkspaceParams struct {
	Name    string
	OwnerID string
}

func authorizeCreateWorkspace(ctx context.Context, p CreateWorkspaceParams, deps Deps, sess *session.Session) error {
	if !sess.IsAuthenticated() {
		return auth.ErrUnauthenticated()
	}
	return nil
}

func createWorkspace(ctx context.Context, p CreateWorkspaceParams, deps Deps) (*domain.Workspace, error) {
	now := time.Now().UTC()
	w := &domain.Workspace{
		ID:        uuid.NewString(),
		Name:      p.Name,
		UserIDs:   []string{p.OwnerID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := deps.Repository.CreateWorkspace(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// NewCreateWorkspace returns the create-workspace use case. The owner is
// the sole initial member; the caller records the owner membership.
func NewCreateWorkspace(deps Deps) dispatch.UseCase[CreateWorkspaceParams, *domain.Workspace] {
	return dispatch.NewUseCase(authorizeCreateWorkspace, createWorkspace, deps)
}

type GetWorkspaceByIDParams struct {
	WorkspaceID string
}

func authorizeGetWorkspaceByID(ctx context.Context, p GetWorkspaceByIDParams, deps Deps, sess *session.Session) error {
	if !sess.IsAuthenticated() {
		return auth.ErrUnauthenticated()
	}
	w, err := deps.Repository.GetWorkspaceByID(ctx, p.WorkspaceID)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrWorkspaceNotFound()
	}
	if !w.HasUser(sess.DistinctID()) {
		return domain.ErrUnauthorizedWorkspaceAccess("")
	}
	return nil
}

func getWorkspaceByID(ctx context.Context, p GetWorkspaceByIDParams, deps Deps) (*domain.Workspace, error) {
	w, err := deps.Repository.GetWorkspaceByID(ctx, p.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrWorkspaceNotFound()
	}
	return w, nil
}

// NewGetWorkspaceByID returns the get-workspace use case.
func NewGetWorkspaceByID(deps Deps) dispatch.UseCase[GetWorkspaceByIDParams, *domain.Workspace] {
	return dispatch.NewUseCase(authorizeGetWorkspaceByID, getWorkspaceByID, deps)
}

type GetUserWorkspacesParams struct {
	UserID string
}

func authorizeGetUserWorkspaces(ctx context.Context, p GetUserWorkspacesParams, deps Deps, sess *session.Session) error {
	if !sess.IsAuthenticated() {
		return auth.ErrUnauthenticated()
	}
	if !sess.IsUserWithID(p.UserID) {
		return apperror.Operational(
			"canopy.1.error.authentication.unauthenticated",
			"unauthorized-user-access",
			403,
			"Cannot access other users workspaces",
		)
	}
	return nil
}

func getUserWorkspaces(ctx context.Context, p GetUserWorkspacesParams, deps Deps) ([]*domain.Workspace, error) {
	return deps.Repository.GetWorkspacesByUserID(ctx, p.UserID)
}

// NewGetUserWorkspaces returns the use case listing a user's workspaces,
// restricted to the user's own session.
func NewGetUserWorkspaces(deps Deps) dispatch.UseCase[GetUserWorkspacesParams, []*domain.Workspace] {
	return dispatch.NewUseCase(authorizeGetUserWorkspaces, getUserWorkspaces, deps)
}

type AddUserToWorkspaceParams struct {
	WorkspaceID string
	UserID      string
}

func authorizeAddUserToWorkspace(ctx context.Context, p AddUserToWorkspaceParams, deps Deps, sess *session.Session) error {
	if !sess.IsAuthenticated() {
		return auth.ErrUnauthenticated()
	}
	w, err := deps.Repository.GetWorkspaceByID(ctx, p.WorkspaceID)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrWorkspaceNotFound()
	}
	if !w.HasUser(sess.DistinctID()) {
		return domain.ErrUnauthorizedWorkspaceAccess("Only workspace members can add users")
	}
	return nil
}

func addUserToWorkspace(ctx context.Context, p AddUserToWorkspaceParams, deps Deps) (struct{}, error) {
	w, err := deps.Repository.GetWorkspaceByID(ctx, p.WorkspaceID)
	if err != nil {
		return struct{}{}, err
	}
	if w == nil {
		return struct{}{}, domain.ErrWorkspaceNotFound()
	}
	if w.HasUser(p.UserID) {
		return struct{}{}, domain.ErrUserAlreadyInWorkspace()
	}
	return struct{}{}, deps.Repository.AddUserToWorkspace(ctx, p.WorkspaceID, p.UserID)
}

// NewAddUserToWorkspace returns the add-user use case. The caller records
// the corresponding membership record after this succeeds.
func NewAddUserToWorkspace(deps Deps) dispatch.UseCase[AddUserToWorkspaceParams, struct{}] {
	return dispatch.NewUseCase(authorizeAddUserToWorkspace, addUserToWorkspace, deps)
}
