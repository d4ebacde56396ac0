// Package handler serves user profiles over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"canopy/backend/internal/dispatch"
	"canopy/backend/internal/server/middleware"
	"canopy/backend/internal/server/respond"
	"canopy/backend/internal/user/domain"
	"canopy/backend/internal/user/usecase"
)

type Deps struct {
	GetUser dispatch.UseCase[usecase.GetUserByIDParams, *domain.User]
	Log     zerolog.Logger
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts the user routes on the given group.
func (h *Handler) Register(r *gin.RouterGroup) {
	r.GET("/:userId", h.GetUser)
}

type userResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Picture   string `json:"picture"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// GetUser returns a user profile. Sessions may only read their own.
func (h *Handler) GetUser(c *gin.Context) {
	userID := c.Param("userId")
	if _, err := uuid.Parse(userID); err != nil {
		respond.BadRequest(c, "Invalid user id")
		return
	}

	user, err := h.deps.GetUser(c.Request.Context(), usecase.GetUserByIDParams{UserID: userID}, middleware.Session(c))
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}

	respond.Data(c, http.StatusOK, userResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Picture:   user.Picture,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UnixMilli(),
		UpdatedAt: user.UpdatedAt.UnixMilli(),
	}, nil)
}
