// Package audit records security-relevant events: sign-in, sign-out,
// token refresh, and membership changes. Recording is best-effort and
// never affects the calling request.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"canopy/backend/internal/audit/domain"
	auditrepo "canopy/backend/internal/audit/repository"
)

// Actions recorded by the authentication and membership flows.
const (
	ActionSignIn        = "sign_in"
	ActionSignOut       = "sign_out"
	ActionTokenRefresh  = "token_refresh"
	ActionMemberAdded   = "member_added"
	ActionMemberRemoved = "member_removed"

	ActionUserCreated      = "user_created"
	ActionWorkspaceCreated = "workspace_created"
)

// IPExtractor returns the client IP for the request in ctx.
type IPExtractor func(context.Context) string

// AuditLogger writes a single audit event. LogEvent is best-effort:
// failures are logged and do not affect the caller.
type AuditLogger interface {
	LogEvent(ctx context.Context, actorID, action, resource, detail string)
}

// Logger implements AuditLogger using the audit repository and an
// optional IP extractor.
type Logger struct {
	repo        auditrepo.Repository
	ipExtractor IPExtractor
	log         zerolog.Logger
}

// NewLogger returns an AuditLogger that persists to repo. ipExtractor may
// be nil; then IP is recorded as "unknown".
func NewLogger(repo auditrepo.Repository, ipExtractor IPExtractor, log zerolog.Logger) *Logger {
	return &Logger{repo: repo, ipExtractor: ipExtractor, log: log}
}

// LogEvent writes one audit log entry. Errors are logged, not returned.
func (l *Logger) LogEvent(ctx context.Context, actorID, action, resource, detail string) {
	if l.repo == nil {
		return
	}
	ip := "unknown"
	if l.ipExtractor != nil {
		ip = l.ipExtractor(ctx)
	}
	entry := &domain.AuditLog{
		ID:        uuid.New().String(),
		ActorID:   actorID,
		Action:    action,
		Resource:  resource,
		IP:        ip,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		l.log.Error().Err(err).
			Str("action", action).
			Str("resource", resource).
			Msg("audit: failed to log event")
	}
}
