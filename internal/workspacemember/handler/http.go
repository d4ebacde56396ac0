// Package handler serves workspace membership records over HTTP.
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
	"canopy/backend/internal/workspacemember/domain"
	"canopy/backend/internal/workspacemember/usecase"
)

type Deps struct {
	GetWorkspaceMembers dispatch.UseCase[usecase.GetWorkspaceMembersParams, []*domain.WorkspaceMember]
	GetMemberWorkspaces dispatch.UseCase[usecase.GetMemberWorkspacesParams, []*domain.WorkspaceMember]
	RemoveMember        dispatch.UseCase[usecase.RemoveWorkspaceMemberParams, struct{}]

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

// Register mounts the membership routes. The per-user listing lives
// under the users group next to the workspace listing.
func (h *Handler) Register(workspaces, users *gin.RouterGroup) {
	workspaces.GET("/:workspaceId/members", h.ListMembers)
	workspaces.DELETE("/:workspaceId/members/:userId", h.RemoveMember)
	users.GET("/:userId/memberships", h.ListMemberships)
}

type memberResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId"`
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	JoinedAt    int64  `json:"joinedAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

func toMemberResponses(members []*domain.WorkspaceMember) []memberResponse {
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{
			ID:          m.ID,
			WorkspaceID: m.WorkspaceID,
			UserID:      m.UserID,
			Role:        m.Role.String(),
			JoinedAt:    m.JoinedAt.UnixMilli(),
			UpdatedAt:   m.UpdatedAt.UnixMilli(),
		})
	}
	return out
}

// ListMembers lists the members of a workspace the caller belongs to.
func (h *Handler) ListMembers(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, err := uuid.Parse(workspaceID); err != nil {
		respond.BadRequest(c, "Invalid workspace id")
		return
	}

	members, err := h.deps.GetWorkspaceMembers(c.Request.Context(), usecase.GetWorkspaceMembersParams{
		WorkspaceID: workspaceID,
	}, middleware.Session(c))
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}
	respond.Data(c, http.StatusOK, toMemberResponses(members), nil)
}

// ListMemberships lists a user's own membership records.
func (h *Handler) ListMemberships(c *gin.Context) {
	userID := c.Param("userId")
	if _, err := uuid.Parse(userID); err != nil {
		respond.BadRequest(c, "Invalid user id")
		return
	}

	members, err := h.deps.GetMemberWorkspaces(c.Request.Context(), usecase.GetMemberWorkspacesParams{
		UserID: userID,
	}, middleware.Session(c))
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}
	respond.Data(c, http.StatusOK, toMemberResponses(members), nil)
}

// RemoveMember removes a member from a workspace the caller belongs to.
func (h *Handler) RemoveMember(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	userID := c.Param("userId")
	if _, err := uuid.Parse(workspaceID); err != nil {
		respond.BadRequest(c, "Invalid workspace id")
		return
	}
	if _, err := uuid.Parse(userID); err != nil {
		respond.BadRequest(c, "Invalid user id")
		return
	}

	ctx := c.Request.Context()
	sess := middleware.Session(c)

	if _, err := h.deps.RemoveMember(ctx, usecase.RemoveWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	}, sess); err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}

	if h.deps.Audit != nil {
		h.deps.Audit.LogEvent(ctx, sess.DistinctID(), audit.ActionMemberRemoved, "workspace:"+workspaceID, userID)
	}
	if h.deps.Events != nil {
		_ = h.deps.Events.Emit(ctx, events.NewEnvelope(events.WorkspaceMemberRemoved, sess, map[string]string{
			"workspaceId": workspaceID,
			"userId":      userID,
		}))
	}

	respond.Data(c, http.StatusNoContent, nil, nil)
}
