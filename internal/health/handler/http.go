// Package handler serves readiness/liveness for load balancers and CI.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is the slice of the database pool the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db Pinger
}

// New returns the health handler. db may be nil; the check then reports
// serving without probing anything.
func New(db Pinger) *Handler {
	return &Handler{db: db}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/healthz", h.Check)
}

// Check probes the database with a short deadline and reports overall
// service health.
func (h *Handler) Check(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"details": gin.H{"database": err.Error()},
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "serving"})
}
