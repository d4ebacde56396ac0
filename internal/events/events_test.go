package events

import (
	"encoding/json"
	"testing"
	"time"

	"canopy/backend/internal/auth/session"
)

func TestNewEnvelope(t *testing.T) {
	sess, err := session.User(session.UserParams{
		DistinctID: "user-1",
		Source:     session.SourceHTTPRequest,
	})
	if err != nil {
		t.Fatalf("session.User: %v", err)
	}

	env := NewEnvelope(WorkspaceMemberAdded, sess, map[string]string{
		"workspaceId": "w-1",
		"userId":      "user-2",
	})

	if env.ID == "" {
		t.Error("envelope ID should be set")
	}
	if env.Name != WorkspaceMemberAdded {
		t.Errorf("name = %q, want %q", env.Name, WorkspaceMemberAdded)
	}
	if time.Since(env.OccurredAt) > time.Minute {
		t.Errorf("occurredAt = %v, want recent", env.OccurredAt)
	}
	if env.Session.DistinctID != "user-1" {
		t.Errorf("session distinctId = %q, want user-1", env.Session.DistinctID)
	}
}

func TestEnvelope_RoundTripRebuildsEventSession(t *testing.T) {
	sess, err := session.User(session.UserParams{
		DistinctID: "user-1",
		Source:     session.SourceHTTPRequest,
	})
	if err != nil {
		t.Fatalf("session.User: %v", err)
	}
	sess.SetAsAuthorizing()
	sess.SetAsAuthorized()

	raw, err := json.Marshal(NewEnvelope(UserCreated, sess, map[string]string{"userId": "user-1"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	rebuilt, err := session.FromValue(env.Session)
	if err != nil {
		t.Fatalf("FromValue: %v", err)
	}
	eventSess, err := session.FromEvent(rebuilt)
	if err != nil {
		t.Fatalf("FromEvent: %v", err)
	}
	if !eventSess.IsFromEvent() {
		t.Error("rebuilt session should be event-sourced")
	}
	if eventSess.IsAuthorized() {
		t.Error("authorization state must not survive the trip through the broker")
	}
	if got := eventSess.DistinctID(); got != "user-1" {
		t.Errorf("DistinctID = %q, want user-1", got)
	}
}
