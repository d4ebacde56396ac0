// Package handler exposes the authentication flows over HTTP: the
// sign-in exchange that turns a provider identity into a local user and
// a session token, sign-out, and session introspection.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	accountdomain "canopy/backend/internal/account/domain"
	"canopy/backend/internal/account/password"
	accountusecase "canopy/backend/internal/account/usecase"
	"canopy/backend/internal/audit"
	"canopy/backend/internal/auth"
	"canopy/backend/internal/auth/session"
	"canopy/backend/internal/dispatch"
	"canopy/backend/internal/events"
	"canopy/backend/internal/server/middleware"
	"canopy/backend/internal/server/respond"
	userdomain "canopy/backend/internal/user/domain"
	userusecase "canopy/backend/internal/user/usecase"
)

// Deps holds everything the authentication endpoints need. Events and
// Audit are best-effort collaborators and may be nil-backed no-ops.
type Deps struct {
	Auth   *auth.Service
	Hasher *password.Hasher

	GetAccount    dispatch.UseCase[accountusecase.GetAccountByProviderAndProviderAccountIDParams, *accountdomain.Account]
	CreateAccount dispatch.UseCase[accountusecase.CreateAccountParams, *accountdomain.Account]
	GetUser       dispatch.UseCase[userusecase.GetUserByIDParams, *userdomain.User]
	CreateUser    dispatch.UseCase[userusecase.CreateUserParams, *userdomain.User]

	Audit  audit.AuditLogger
	Events events.Producer
	Log    zerolog.Logger
}

// Handler serves /api/auth.
type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts the authentication routes on the given group.
func (h *Handler) Register(r *gin.RouterGroup) {
	r.POST("/sign-in", h.SignIn)
	r.POST("/sign-out", h.SignOut)
	r.GET("/session", h.CurrentSession)
}

type signInProfile struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Picture   string `json:"picture"`
}

// signInRequest covers both paths: a provider exchange carries the
// provider account id plus the tokens and profile the caller obtained
// from the provider, a local sign-in carries email and password.
type signInRequest struct {
	Provider          string        `json:"provider"`
	ProviderAccountID string        `json:"providerAccountId"`
	AccessToken       string        `json:"accessToken"`
	RefreshToken      string        `json:"refreshToken"`
	TokenType         string        `json:"tokenType"`
	ExpiresAt         *time.Time    `json:"expiresAt"`
	Email             string        `json:"email"`
	Password          string        `json:"password"`
	Profile           signInProfile `json:"profile"`
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

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Picture:   u.Picture,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UnixMilli(),
		UpdatedAt: u.UpdatedAt.UnixMilli(),
	}
}

// SignIn exchanges a verified provider identity (or local credentials)
// for a session token. Unknown identities are registered on the fly:
// the account and its user profile are created before the session is
// issued, so sign-up and sign-in are the same request.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}

	provider, err := accountdomain.ParseProvider(req.Provider)
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}

	providerAccountID := req.ProviderAccountID
	if provider.IsLocal() {
		if req.Email == "" || req.Password == "" {
			respond.BadRequest(c, "Email and password are required")
			return
		}
		providerAccountID = req.Email
	}
	if providerAccountID == "" {
		respond.BadRequest(c, "Provider account id is required")
		return
	}

	ctx := c.Request.Context()
	sess := middleware.Session(c)

	account, err := h.deps.GetAccount(ctx, accountusecase.GetAccountByProviderAndProviderAccountIDParams{
		Provider:          provider,
		ProviderAccountID: providerAccountID,
	}, sess)
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}

	var userID string
	created := false
	switch {
	case account == nil:
		userID, err = h.register(ctx, sess, provider, providerAccountID, req)
		if err != nil {
			respond.Error(c, h.deps.Log, err)
			return
		}
		created = true
	case provider.IsLocal():
		if err := h.deps.Hasher.Compare(account.PasswordHash, []byte(req.Password)); err != nil {
			respond.Error(c, h.deps.Log, auth.ErrInvalidCredentials())
			return
		}
		userID = account.UserID
	default:
		userID = account.UserID
	}

	userSess, err := session.User(session.UserParams{
		DistinctID: userID,
		Device:     sess.Device(),
		Source:     session.SourceHTTPRequest,
	})
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}

	user, err := h.deps.GetUser(ctx, userusecase.GetUserByIDParams{UserID: userID}, userSess)
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}

	creds, err := h.deps.Auth.Authenticate(userSess)
	if err != nil {
		respond.Error(c, h.deps.Log, err)
		return
	}
	middleware.SetCookie(c, creds.Cookie)
	c.Header("Authorization", creds.AuthorizationHeader)

	if h.deps.Audit != nil {
		h.deps.Audit.LogEvent(ctx, userID, audit.ActionSignIn, "user:"+userID, string(provider))
	}
	if created && h.deps.Events != nil {
		_ = h.deps.Events.Emit(ctx, events.NewEnvelope(events.UserCreated, userSess, map[string]string{
			"userId": userID,
		}))
	}

	respond.Data(c, http.StatusOK, toUserResponse(user), gin.H{"token": creds.Token})
}

// register creates the account record and its user profile under a
// fresh shared user id.
func (h *Handler) register(ctx context.Context, sess *session.Session, provider accountdomain.Provider, providerAccountID string, req signInRequest) (string, error) {
	userID := uuid.NewString()

	passwordHash := ""
	if provider.IsLocal() {
		hash, err := h.deps.Hasher.Hash([]byte(req.Password))
		if err != nil {
			return "", err
		}
		passwordHash = hash
	}

	if _, err := h.deps.CreateAccount(ctx, accountusecase.CreateAccountParams{
		UserID:            userID,
		Provider:          provider,
		ProviderAccountID: providerAccountID,
		RefreshToken:      req.RefreshToken,
		AccessToken:       req.AccessToken,
		ExpiresAt:         req.ExpiresAt,
		TokenType:         req.TokenType,
		PasswordHash:      passwordHash,
	}, sess); err != nil {
		return "", err
	}

	email := req.Profile.Email
	if email == "" {
		email = req.Email
	}
	if _, err := h.deps.CreateUser(ctx, userusecase.CreateUserParams{
		UserID:    userID,
		Email:     email,
		FirstName: req.Profile.FirstName,
		LastName:  req.Profile.LastName,
		Picture:   req.Profile.Picture,
	}, sess); err != nil {
		return "", err
	}
	return userID, nil
}

// SignOut clears the session cookie. The token itself stays valid until
// it expires; revocation is the refresh path's concern.
func (h *Handler) SignOut(c *gin.Context) {
	sess := middleware.Session(c)
	middleware.SetCookie(c, h.deps.Auth.Deauthenticate())

	if h.deps.Audit != nil && sess.IsAuthenticated() {
		h.deps.Audit.LogEvent(c.Request.Context(), sess.DistinctID(), audit.ActionSignOut, "user:"+sess.DistinctID(), "")
	}
	respond.Data(c, http.StatusNoContent, nil, nil)
}

// CurrentSession returns the session the middleware derived from the
// request, authenticated or not.
func (h *Handler) CurrentSession(c *gin.Context) {
	respond.Data(c, http.StatusOK, middleware.Session(c).Value(), nil)
}
