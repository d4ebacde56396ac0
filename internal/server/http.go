// Package server assembles the HTTP surface: middleware chain, route
// registration, and server lifecycle.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"canopy/backend/internal/auth"
	authhandler "canopy/backend/internal/auth/handler"
	healthhandler "canopy/backend/internal/health/handler"
	"canopy/backend/internal/server/middleware"
	userhandler "canopy/backend/internal/user/handler"
	workspacehandler "canopy/backend/internal/workspace/handler"
	memberhandler "canopy/backend/internal/workspacemember/handler"
)

// Deps holds the collaborators the HTTP router mounts.
type Deps struct {
	// Auth verifies and refreshes session tokens for every request.
	Auth *auth.Service
	// Revoker is told about superseded token ids on refresh. May be nil.
	Revoker middleware.TokenRevoker
	// HealthPinger is probed by /healthz (e.g. *pgxpool.Pool). If nil,
	// the health check skips the database.
	HealthPinger healthhandler.Pinger

	AuthHandler      *authhandler.Handler
	UserHandler      *userhandler.Handler
	WorkspaceHandler *workspacehandler.Handler
	MemberHandler    *memberhandler.Handler
}

// Options carries the transport-level knobs.
type Options struct {
	Addr           string
	Environment    string
	AllowedOrigins []string
}

// Server is the HTTP server with its router wired.
type Server struct {
	http *http.Server
	log  zerolog.Logger
}

// New builds the router and returns an unstarted server.
func New(opts Options, deps Deps, log zerolog.Logger) *Server {
	if opts.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.Authenticate(deps.Auth, deps.Revoker))

	healthhandler.New(deps.HealthPinger).Register(r)

	api := r.Group("/api")
	deps.AuthHandler.Register(api.Group("/auth"))

	users := api.Group("/users")
	workspaces := api.Group("/workspaces")
	deps.UserHandler.Register(users)
	deps.WorkspaceHandler.Register(workspaces, users)
	deps.MemberHandler.Register(workspaces, users)

	return &Server{
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		log: log,
	}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
