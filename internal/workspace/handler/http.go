// Package handler serves workspaces over HTTP. Workspace writes are
// two-step: the workspace operation authorizes and runs first, then the
// membership record is written with the already-authorized session so
// the membership gate is not re-evaluated mid-flow.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"canopy/backend/internal/audit"
	"canopy/backend/internal/dispatch"
	"canopy/backend/internal/events"
	"canopy/backend/internal/server/middleware"
	"canopy/backend/internal/server/respond"
	"canopy/backend/internal/workspace/domain"
	"canopy/backend/internal/workspace/usecase"
	memberdomain "canopy/backend/internal/workspacemember/domain"
	memberusecase "canopy/backend/internal/workspacemember/usecase"
)

type Deps struct {
	CreateWorkspace    dispatch.UseCase[usecase.CreateWorkspaceParams, *domain.Workspace]
	GetWorkspaceByID   dispatch.UseCase[usecase.GetWorkspaceByIDParams, *domain.Workspace]
	GetUserWorkspaces  dispatch.UseCase[usecase.GetUserWorkspacesParams, []*domain.Workspace]
	AddUserToWorkspace dispatch.UseCase[usecase.AddUserToWorkspaceParams, struct{}]
	AddMember          dispatch.UseCase[memberusecase.AddWorkspaceMemberParams, struct{}]

	Audit  audit.AuditLogger
	Events events.Producer
	Log    zerolog.Logger
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts the workspace routes. The per-user listing lives under
// the users group to keep resource paths canonical.
func (h *Handler) Register(workspaces, users *gin.RouterGroup) {
	workspaces.POST("", h.CreateWorkspace)
	workspaces.GET("/:workspaceId", h.GetWorkspace)
	workspaces.POST("/:workspaceId/users", h.AddUser)
	users.GET("/:userId/workspaces", h.GetUserWorkspaces)
}

type createWorkspaceRequest struct {
	Name string `json:"name"`
}

type addUserRequest struct {
	UserID string `json:"userId"`
}

type workspaceResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	UserIDs   []string `json:"userIds"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

func toWorkspaceResponse(w *domain.Workspace) workspaceResponse {
	return workspaceResponse{
		ID:        w.ID,
		Name:      w.Name,
		UserIDs:   w.UserIDs,
		CreatedAt: w.CreatedAt.UnixMilli(),
		UpdatedAt: w.UpdatedAt.UnixMilli(),
	}
}

// CreateWorkspace creates a workspace owned by the calling user and
// records the owner membership.
func (h *Handler) CreateWorkspace(c *gin.Context) {
	var req createWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		respond.BadRequest(c, "Name is required")
		return
	}

	ctx := c.Request.Context()
	sess := middleware.Session(c)

	workspace, err := h.deps.CreateWorkspace(ctx, usecase.CreateWorkspaceParams{
		Name:    req.Name,
		OwnerID: sess.DistinctID(),
	}, sess)
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}

	if _, err := h.deps.AddMember(ctx, memberusecase.AddWorkspaceMemberParams{
		WorkspaceID: workspace.ID,
		UserID:      sess.DistinctID(),
		Role:        memberdomain.RoleOwner,
	}, sess); err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}

	if h.deps.Events != nil {
		_ = h.deps.Events.Emit(ctx, events.NewEnvelope(events.WorkspaceCreated, sess, map[string]string{
			"workspaceId": workspace.ID,
			"ownerId":     sess.DistinctID(),
		}))
	}

	respond.Data(c, http.StatusCreated, toWorkspaceResponse(workspace), nil)
}

// GetWorkspace returns a workspace the calling user belongs to.
func (h *Handler) GetWorkspace(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, err := uuid.Parse(workspaceID); err != nil {
		respond.BadRequest(c, "Invalid workspace id")
		return
	}

	workspace, err := h.deps.GetWorkspaceByID(c.Request.Context(), usecase.GetWorkspaceByIDParams{
		WorkspaceID: workspaceID,
	}, middleware.Session(c))
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}
	respond.Data(c, http.StatusOK, toWorkspaceResponse(workspace), nil)
}

// GetUserWorkspaces lists the workspaces a user belongs to. Sessions may
// only list their own.
func (h *Handler) GetUserWorkspaces(c *gin.Context) {
	userID := c.Param("userId")
	if _, err := uuid.Parse(userID); err != nil {
		respond.BadRequest(c, "Invalid user id")
		return
	}

	workspaces, err := h.deps.GetUserWorkspaces(c.Request.Context(), usecase.GetUserWorkspacesParams{
		UserID: userID,
	}, middleware.Session(c))
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}

	out := make([]workspaceResponse, 0, len(workspaces))
	for _, w := range workspaces {
		out = append(out, toWorkspaceResponse(w))
	}
	respond.Data(c, http.StatusOK, out, nil)
}

// AddUser adds a user to a workspace and records the membership, then
// returns the updated workspace.
func (h *Handler) AddUser(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, err := uuid.Parse(workspaceID); err != nil {
		respond.BadRequest(c, "Invalid workspace id")
		return
	}
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		respond.BadRequest(c, "Invalid user id")
		return
	}

	ctx := c.Request.Context()
	sess := middleware.Session(c)

	if _, err := h.deps.AddUserToWorkspace(ctx, usecase.AddUserToWorkspaceParams{
		WorkspaceID: workspaceID,
		UserID:      req.UserID,
	}, sess); err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}

	if _, err := h.deps.AddMember(ctx, memberusecase.AddWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      req.UserID,
		Role:        memberdomain.RoleMember,
	}, sess); err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}

	if h.deps.Audit != nil {
		h.deps.Audit.LogEvent(ctx, sess.DistinctID(), audit.ActionMemberAdded, "workspace:"+workspaceID, req.UserID)
	}
	if h.deps.Events != nil {
		_ = h.deps.Events.Emit(ctx, events.NewEnvelope(events.WorkspaceMemberAdded, sess, map[string]string{
			"workspaceId": workspaceID,
			"userId":      req.UserID,
		}))
	}

	workspace, err := h.deps.GetWorkspaceByID(ctx, usecase.GetWorkspaceByIDParams{WorkspaceID: workspaceID}, sess)
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}
	respond.Data(c, http.StatusOK, toWorkspaceResponse(workspace), nil)
}
