// Package session defines the per-request identity and authorization
// context: the Session entity and its value objects (type, source,
// authorization status, device). Sessions are constructed fresh for every
// request or event and are never persisted.
package session

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"canopy/backend/internal/apperror"
)

func invalidSessionError(message string) *apperror.Error {
	return apperror.Operational(
		"canopy.1.error.authentication.invalid_session",
		"invalid-session",
		400,
		message,
	)
}

// Session aggregates the session value objects into one identity
// representing "who is making this request and how authorized are they".
// Authorization status is the only mutable attribute.
type Session struct {
	id           string
	typ          Type
	distinctID   string
	roles        []string
	registeredAt *time.Time
	source       Source // empty when unknown
	device       Device
	status       AuthorizationStatus
}

// Params are the construction attributes of a Session. ID defaults to a
// fresh uuid and AuthorizationStatus to unauthorized when omitted.
type Params struct {
	ID                  string
	Type                Type
	DistinctID          string
	Roles               []string
	RegisteredAt        *time.Time
	Source              Source
	Device              Device
	AuthorizationStatus AuthorizationStatus
}

// New validates p and constructs a Session. A user-class type
// (authenticated or admin) with an empty distinct id fails with the
// invalid-session error.
func New(p Params) (*Session, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.AuthorizationStatus == "" {
		p.AuthorizationStatus = StatusUnauthorized
	}
	typ, err := ParseType(string(p.Type))
	if err != nil {
		return nil, err
	}
	status, err := ParseAuthorizationStatus(string(p.AuthorizationStatus))
	if err != nil {
		return nil, err
	}
	source := p.Source
	if source != "" {
		if source, err = ParseSource(string(p.Source)); err != nil {
			return nil, err
		}
	}
	if typ.IsUser() && p.DistinctID == "" {
		return nil, invalidSessionError("user session requires a distinct id").
			WithMeta("type", typ.String())
	}
	return &Session{
		id:           p.ID,
		typ:          typ,
		distinctID:   p.DistinctID,
		roles:        p.Roles,
		registeredAt: p.RegisteredAt,
		source:       source,
		device:       p.Device,
		status:       status,
	}, nil
}

// UnauthenticatedParams carries the optional attributes of an anonymous
// session.
type UnauthenticatedParams struct {
	ID     string
	Device Device
	Source Source
}

// Unauthenticated constructs an anonymous session. It cannot fail.
func Unauthenticated(p UnauthenticatedParams) *Session {
	s, _ := New(Params{
		ID:     p.ID,
		Type:   TypeUnauthenticated,
		Source: p.Source,
		Device: p.Device,
	})
	return s
}

// UserParams carries the attributes of a first-class logged-in session.
type UserParams struct {
	DistinctID string
	Device     Device
	Source     Source
}

// User constructs an authenticated session for the given distinct id,
// granting the per-user role. Fails when DistinctID is empty.
func User(p UserParams) (*Session, error) {
	return New(Params{
		Type:       TypeAuthenticated,
		DistinctID: p.DistinctID,
		Roles:      []string{"user-" + p.DistinctID},
		Source:     p.Source,
		Device:     p.Device,
	})
}

// FromEvent reconstructs a session for asynchronous event processing. It
// keeps the identity attributes, strips transport-specific state, fixes
// the source to event, and resets the authorization status.
func FromEvent(s *Session) (*Session, error) {
	return New(Params{
		Type:         s.typ,
		DistinctID:   s.distinctID,
		RegisteredAt: s.registeredAt,
		Source:       SourceEvent,
		Device:       s.device,
	})
}

// Accessors
// ---------

func (s *Session) ID() string               { return s.id }
func (s *Session) Type() Type               { return s.typ }
func (s *Session) DistinctID() string       { return s.distinctID }
func (s *Session) Device() Device           { return s.device }
func (s *Session) RegisteredAt() *time.Time { return s.registeredAt }

// Roles returns a copy; the session's roles are fixed at construction.
func (s *Session) Roles() []string { return slices.Clone(s.roles) }

// IsAuthenticated reports whether the session type is authenticated.
// Admin sessions answer via Type().IsAdmin or Type().IsUser.
func (s *Session) IsAuthenticated() bool { return s.typ.IsAuthenticated() }

// IsUserWithID reports whether the session represents exactly this user.
func (s *Session) IsUserWithID(userID string) bool { return s.distinctID == userID }

// IsFromEvent reports whether the session was built for event processing.
func (s *Session) IsFromEvent() bool { return s.source.IsEvent() }

// Authorization
// -------------

func (s *Session) AuthorizationStatus() AuthorizationStatus { return s.status }

// IsUnauthorized defaults to true when the status was never set.
func (s *Session) IsUnauthorized() bool {
	if s.status == "" {
		return true
	}
	return s.status.IsUnauthorized()
}

func (s *Session) IsAuthorizing() bool { return s.status.IsAuthorizing() }
func (s *Session) IsAuthorized() bool  { return s.status.IsAuthorized() }

// SetAsAuthorizing marks the per-request authorization check as running.
// There is no transition back to unauthorized: a failed check aborts the
// call instead.
func (s *Session) SetAsAuthorizing() { s.status = StatusAuthorizing }

// SetAsAuthorized marks the per-request authorization check as passed.
func (s *Session) SetAsAuthorized() { s.status = StatusAuthorized }

// Serialization
// -------------

// Value is the plain serializable projection of a Session, suitable for
// embedding in a signed token or an event envelope.
type Value struct {
	ID                  string     `json:"id"`
	Type                string     `json:"type"`
	DistinctID          string     `json:"distinctId"`
	Roles               []string   `json:"roles"`
	RegisteredAt        *time.Time `json:"registeredAt,omitempty"`
	Source              string     `json:"source,omitempty"`
	Device              Device     `json:"device"`
	AuthorizationStatus string     `json:"authorizationStatus"`
}

// Value serializes the full entity including nested value objects.
func (s *Session) Value() Value {
	return Value{
		ID:                  s.id,
		Type:                s.typ.String(),
		DistinctID:          s.distinctID,
		Roles:               s.roles,
		RegisteredAt:        s.registeredAt,
		Source:              s.source.String(),
		Device:              s.device,
		AuthorizationStatus: s.status.String(),
	}
}

// FromValue rebuilds a Session from its serialized projection.
func FromValue(v Value) (*Session, error) {
	return New(Params{
		ID:                  v.ID,
		Type:                Type(v.Type),
		DistinctID:          v.DistinctID,
		Roles:               v.Roles,
		RegisteredAt:        v.RegisteredAt,
		Source:              Source(v.Source),
		Device:              v.Device,
		AuthorizationStatus: AuthorizationStatus(v.AuthorizationStatus),
	})
}
