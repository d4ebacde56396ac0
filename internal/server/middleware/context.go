package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"canopy/backend/internal/auth/session"
)

const sessionContextKey = "canopy.session"

type clientIPKey struct{}

// WithSession publishes the request session for downstream handlers.
func WithSession(c *gin.Context, sess *session.Session) {
	c.Set(sessionContextKey, sess)
	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), clientIPKey{}, c.ClientIP()),
	)
}

// Session returns the session the authentication middleware attached to
// the request. Handlers running without that middleware get an anonymous
// session rather than a nil.
func Session(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return session.Unauthenticated(session.UnauthenticatedParams{})
	}
	sess, ok := v.(*session.Session)
	if !ok || sess == nil {
		return session.Unauthenticated(session.UnauthenticatedParams{})
	}
	return sess
}

// ClientIP returns the client IP recorded for the request context, or
// "unknown" outside an HTTP request.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok && ip != "" {
		return ip
	}
	return "unknown"
}
