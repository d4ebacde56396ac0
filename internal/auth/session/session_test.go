package session

import (
	"errors"
	"testing"

	"canopy/backend/internal/apperror"
)

func TestNew_UserTypesRequireDistinctID(t *testing.T) {
	for _, typ := range []Type{TypeUnauthenticated, TypeAuthenticated, TypeAdmin} {
		s, err := New(Params{Type: typ, DistinctID: "u1"})
		if err != nil {
			t.Fatalf("New(%s, u1): %v", typ, err)
		}
		if s.DistinctID() != "u1" {
			t.Errorf("New(%s): distinct id = %q, want u1", typ, s.DistinctID())
		}
	}

	for _, typ := range []Type{TypeAuthenticated, TypeAdmin} {
		_, err := New(Params{Type: typ, DistinctID: ""})
		if err == nil {
			t.Fatalf("New(%s, empty distinct id): want error", typ)
		}
		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			t.Fatalf("New(%s): error is %T, want *apperror.Error", typ, err)
		}
		if appErr.Code != "invalid-session" || appErr.Status != 400 {
			t.Errorf("New(%s): got code=%q status=%d", typ, appErr.Code, appErr.Status)
		}
	}

	if _, err := New(Params{Type: TypeUnauthenticated}); err != nil {
		t.Errorf("New(unauthenticated, empty distinct id): %v", err)
	}
}

func TestNew_RejectsInvalidValueObjects(t *testing.T) {
	if _, err := New(Params{Type: "root", DistinctID: "u1"}); err == nil {
		t.Error("invalid type accepted")
	}
	if _, err := New(Params{Type: TypeAuthenticated, DistinctID: "u1", Source: "cron"}); err == nil {
		t.Error("invalid source accepted")
	}
	if _, err := New(Params{Type: TypeAuthenticated, DistinctID: "u1", AuthorizationStatus: "maybe"}); err == nil {
		t.Error("invalid authorization status accepted")
	}
}

func TestUnauthenticated(t *testing.T) {
	s := Unauthenticated(UnauthenticatedParams{})
	if s.IsAuthenticated() {
		t.Error("unauthenticated session reports authenticated")
	}
	if s.DistinctID() != "" {
		t.Errorf("distinct id = %q, want empty", s.DistinctID())
	}
	if s.ID() == "" {
		t.Error("id not generated")
	}
	if !s.IsUnauthorized() {
		t.Error("fresh session not unauthorized")
	}

	withID := Unauthenticated(UnauthenticatedParams{ID: "client-1", Source: SourceHTTPRequest})
	if withID.ID() != "client-1" {
		t.Errorf("id = %q, want client-1", withID.ID())
	}
}

func TestUser(t *testing.T) {
	s, err := User(UserParams{DistinctID: "u1"})
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Error("user session not authenticated")
	}
	if !s.IsUserWithID("u1") {
		t.Error("IsUserWithID(u1) = false")
	}
	if s.IsUserWithID("u2") {
		t.Error("IsUserWithID(u2) = true")
	}
	if got := s.Roles(); len(got) != 1 || got[0] != "user-u1" {
		t.Errorf("roles = %v, want [user-u1]", got)
	}

	if _, err := User(UserParams{DistinctID: ""}); err == nil {
		t.Error("User with empty distinct id accepted")
	}
}

func TestRoles_CopyOnRead(t *testing.T) {
	s, err := User(UserParams{DistinctID: "u1"})
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	leaked := s.Roles()
	leaked[0] = "admin"
	if got := s.Roles(); got[0] != "user-u1" {
		t.Errorf("roles mutated through accessor result: %v", got)
	}
}

func TestAuthorizationStateMachine(t *testing.T) {
	s, err := User(UserParams{DistinctID: "u1"})
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if s.IsAuthorized() {
		t.Error("fresh session already authorized")
	}
	if !s.IsUnauthorized() {
		t.Error("fresh session not unauthorized")
	}

	s.SetAsAuthorizing()
	if !s.IsAuthorizing() || s.IsAuthorized() || s.IsUnauthorized() {
		t.Errorf("after SetAsAuthorizing: status = %s", s.AuthorizationStatus())
	}

	s.SetAsAuthorized()
	if !s.IsAuthorized() {
		t.Error("after SetAsAuthorized: IsAuthorized = false")
	}

	pre, err := New(Params{Type: TypeAuthenticated, DistinctID: "u1", AuthorizationStatus: StatusAuthorized})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !pre.IsAuthorized() {
		t.Error("explicitly authorized construction not honored")
	}
}

func TestValueRoundTrip(t *testing.T) {
	device := BrowserDevice("Mozilla/5.0 (Windows NT 10.0) Chrome/120.0.0.0 Safari/537.36", "1920", "1080")
	s, err := User(UserParams{DistinctID: "u1", Device: device, Source: SourceHTTPRequest})
	if err != nil {
		t.Fatalf("User: %v", err)
	}

	rebuilt, err := FromValue(s.Value())
	if err != nil {
		t.Fatalf("FromValue: %v", err)
	}
	if rebuilt.IsAuthenticated() != s.IsAuthenticated() {
		t.Error("IsAuthenticated changed across round-trip")
	}
	if rebuilt.DistinctID() != s.DistinctID() {
		t.Errorf("distinct id = %q, want %q", rebuilt.DistinctID(), s.DistinctID())
	}
	if rebuilt.Device() != s.Device() {
		t.Errorf("device = %+v, want %+v", rebuilt.Device(), s.Device())
	}
	if rebuilt.IsFromEvent() != s.IsFromEvent() {
		t.Error("IsFromEvent changed across round-trip")
	}
}

func TestFromEvent(t *testing.T) {
	s, err := User(UserParams{DistinctID: "u1", Source: SourceHTTPRequest})
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	s.SetAsAuthorized()

	evt, err := FromEvent(s)
	if err != nil {
		t.Fatalf("FromEvent: %v", err)
	}
	if !evt.IsFromEvent() {
		t.Error("event session IsFromEvent = false")
	}
	if evt.DistinctID() != "u1" {
		t.Errorf("distinct id = %q, want u1", evt.DistinctID())
	}
	if evt.IsAuthorized() {
		t.Error("event session inherited authorized status")
	}
	if evt.ID() == s.ID() {
		t.Error("event session reused the request session id")
	}
}

func TestParseEnums(t *testing.T) {
	if _, err := ParseType("authenticated"); err != nil {
		t.Errorf("ParseType(authenticated): %v", err)
	}
	if _, err := ParseType("guest"); err == nil {
		t.Error("ParseType(guest): want error")
	}
	if got := TypeAdmin.IsUser(); !got {
		t.Error("admin IsUser = false")
	}
	if got := TypeUnauthenticated.IsUser(); got {
		t.Error("unauthenticated IsUser = true")
	}

	if _, err := ParseSource("event"); err != nil {
		t.Errorf("ParseSource(event): %v", err)
	}
	if _, err := ParseSource("webhook"); err == nil {
		t.Error("ParseSource(webhook): want error")
	}

	if _, err := ParseAuthorizationStatus("authorizing"); err != nil {
		t.Errorf("ParseAuthorizationStatus(authorizing): %v", err)
	}
	if _, err := ParseAuthorizationStatus("granted"); err == nil {
		t.Error("ParseAuthorizationStatus(granted): want error")
	}
}
