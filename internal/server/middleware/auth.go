package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"canopy/backend/internal/auth"
	"canopy/backend/internal/auth/session"
	"canopy/backend/internal/auth/token"
)

// Client headers the browser attaches alongside the session token.
const (
	HeaderClientSessionID    = "Client-Session-Id"
	HeaderClientWindowWidth  = "Client-Window-Width"
	HeaderClientWindowHeight = "Client-Window-Height"
)

// RefreshAfter is the token age beyond which the middleware re-issues
// credentials on an authenticated request.
const RefreshAfter = time.Hour

// TokenRevoker receives the jti of a token superseded by a refresh.
// There is no token blacklist yet; the wired implementation records the
// jti to the audit log so a blacklist can be backfilled later.
type TokenRevoker interface {
	RevokeToken(ctx context.Context, jti string)
}

// Authenticate builds the request session from the session cookie or
// Authorization header. It never aborts the request: a missing or invalid
// token yields an anonymous session, and every downstream handler can
// rely on Session(c) being non-nil.
func Authenticate(svc *auth.Service, revoker TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c, svc.CookieName())
		device := deviceFromRequest(c)
		clientSessionID := c.GetHeader(HeaderClientSessionID)

		claims, err := svc.Verify(tokenString)
		if err != nil || claims == nil {
			// Token verification failure is "no session", never an error.
			WithSession(c, session.Unauthenticated(session.UnauthenticatedParams{
				ID:     clientSessionID,
				Device: device,
				Source: session.SourceHTTPRequest,
			}))
			c.Next()
			return
		}

		sess, err := session.New(session.Params{
			ID:         clientSessionID,
			Type:       session.Type(claims.Type),
			DistinctID: claims.DistinctID,
			Roles:      claims.Roles,
			Source:     session.SourceHTTPRequest,
			Device:     device,
		})
		if err != nil {
			WithSession(c, session.Unauthenticated(session.UnauthenticatedParams{
				ID:     clientSessionID,
				Device: device,
				Source: session.SourceHTTPRequest,
			}))
			c.Next()
			return
		}

		refresh(c, svc, revoker, sess, claims)

		WithSession(c, sess)
		c.Next()
	}
}

// refresh re-issues credentials when the current token is older than
// RefreshAfter, emitting the refreshed Authorization header and cookie
// and handing the superseded jti to the revoker.
func refresh(c *gin.Context, svc *auth.Service, revoker TokenRevoker, sess *session.Session, claims *token.Claims) {
	if claims.IssuedAt == nil {
		return
	}
	if time.Since(claims.IssuedAt.Time) < RefreshAfter {
		return
	}
	creds, err := svc.Authenticate(sess)
	if err != nil {
		return
	}
	c.Header("Authorization", creds.AuthorizationHeader)
	SetCookie(c, creds.Cookie)
	if revoker != nil && claims.ID != "" {
		revoker.RevokeToken(c.Request.Context(), claims.ID)
	}
}

// SetCookie applies a cookie-write instruction to the response.
func SetCookie(c *gin.Context, cookie auth.Cookie) {
	c.SetCookie(cookie.Name, cookie.Value, cookie.MaxAge, "/", cookie.Domain, cookie.Secure, cookie.HTTPOnly)
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	token, _ := c.Cookie(cookieName)

	// Authorization header overrides the cookie when both are present.
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	return token
}

func deviceFromRequest(c *gin.Context) session.Device {
	userAgent := c.GetHeader("User-Agent")
	if userAgent == "" {
		return session.UndetectableDevice()
	}
	return session.BrowserDevice(
		userAgent,
		c.GetHeader(HeaderClientWindowWidth),
		c.GetHeader(HeaderClientWindowHeight),
	)
}
