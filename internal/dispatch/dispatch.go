// Package dispatch implements the authorize-then-handle contract every
// business use case is composed from: an authorize gate that inspects the
// session, followed by a handler that performs the actual work.
package dispatch

import (
	"context"

	"canopy/backend/internal/auth/session"
)

// AuthorizeFunc inspects the session (and loads minimal state through the
// dependencies) and returns a typed error on failure. A nil return means
// the check passed.
type AuthorizeFunc[P, D any] func(ctx context.Context, params P, deps D, sess *session.Session) error

// HandlerFunc performs the state mutation or read, assuming authorization
// already passed.
type HandlerFunc[P, D, R any] func(ctx context.Context, params P, deps D) (R, error)

// UseCase is a dispatchable use case: parameters plus the caller's session.
type UseCase[P, R any] func(ctx context.Context, params P, sess *session.Session) (R, error)

// NewUseCase binds an authorize gate and a handler to their dependencies.
//
// When the session is already marked authorized the gate is skipped and
// the handler runs directly; this is the trusted-internal-call bypass used
// when one module invokes another module's use case after its own
// authorize step has passed. All externally constructed sessions start
// unauthorized, so external calls are always checked. A nil session is
// treated as anonymous.
func NewUseCase[P, D, R any](authorize AuthorizeFunc[P, D], handler HandlerFunc[P, D, R], deps D) UseCase[P, R] {
	return func(ctx context.Context, params P, sess *session.Session) (R, error) {
		if sess == nil {
			sess = session.Unauthenticated(session.UnauthenticatedParams{})
		}
		if !sess.IsAuthorized() {
			sess.SetAsAuthorizing()
			if err := authorize(ctx, params, deps, sess); err != nil {
				var zero R
				return zero, err
			}
			sess.SetAsAuthorized()
		}
		return handler(ctx, params, deps)
	}
}
