// Package events carries domain events between the API process and the
// event worker. Every event embeds the acting session's serialized value
// so the consumer can rebuild an event-sourced session and run follow-up
// use cases through the same authorization contract.
package events

import (
	"time"

	"github.com/google/uuid"

	"canopy/backend/internal/auth/session"
)

// Event names emitted by the domain modules.
const (
	UserCreated            = "user.created"
	WorkspaceCreated       = "workspace.created"
	WorkspaceMemberAdded   = "workspace.member_added"
	WorkspaceMemberRemoved = "workspace.member_removed"
)

// Envelope is the wire shape of a domain event.
type Envelope struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	OccurredAt time.Time         `json:"occurredAt"`
	Session    session.Value     `json:"session"`
	Payload    map[string]string `json:"payload"`
}

// NewEnvelope stamps a fresh event for the given acting session.
func NewEnvelope(name string, sess *session.Session, payload map[string]string) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		Name:       name,
		OccurredAt: time.Now().UTC(),
		Session:    sess.Value(),
		Payload:    payload,
	}
}
