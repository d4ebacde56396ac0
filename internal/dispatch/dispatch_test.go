package dispatch

import (
	"context"
	"errors"
	"testing"

	"canopy/backend/internal/auth/session"
)

type testDeps struct{}

func TestNewUseCase_RunsAuthorizeThenHandler(t *testing.T) {
	authorizeCalls, handlerCalls := 0, 0
	uc := NewUseCase(
		func(ctx context.Context, p string, d testDeps, sess *session.Session) error {
			authorizeCalls++
			return nil
		},
		func(ctx context.Context, p string, d testDeps) (string, error) {
			handlerCalls++
			return "ok:" + p, nil
		},
		testDeps{},
	)

	sess, err := session.User(session.UserParams{DistinctID: "u1"})
	if err != nil {
		t.Fatalf("session.User: %v", err)
	}

	got, err := uc(context.Background(), "in", sess)
	if err != nil {
		t.Fatalf("use case: %v", err)
	}
	if got != "ok:in" {
		t.Errorf("result = %q", got)
	}
	if authorizeCalls != 1 || handlerCalls != 1 {
		t.Errorf("authorize=%d handler=%d, want 1/1", authorizeCalls, handlerCalls)
	}
	if !sess.IsAuthorized() {
		t.Error("session not marked authorized after successful dispatch")
	}
}

func TestNewUseCase_SkipsAuthorizeWhenAlreadyAuthorized(t *testing.T) {
	authorizeCalls, handlerCalls := 0, 0
	uc := NewUseCase(
		func(ctx context.Context, p string, d testDeps, sess *session.Session) error {
			authorizeCalls++
			return nil
		},
		func(ctx context.Context, p string, d testDeps) (string, error) {
			handlerCalls++
			return p, nil
		},
		testDeps{},
	)

	sess, err := session.User(session.UserParams{DistinctID: "u1"})
	if err != nil {
		t.Fatalf("session.User: %v", err)
	}
	sess.SetAsAuthorized()

	if _, err := uc(context.Background(), "in", sess); err != nil {
		t.Fatalf("use case: %v", err)
	}
	if authorizeCalls != 0 {
		t.Errorf("authorize called %d times on an authorized session", authorizeCalls)
	}
	if handlerCalls != 1 {
		t.Errorf("handler called %d times, want 1", handlerCalls)
	}
}

func TestNewUseCase_AuthorizeFailureAbortsHandler(t *testing.T) {
	wantErr := errors.New("denied")
	handlerCalls := 0
	uc := NewUseCase(
		func(ctx context.Context, p string, d testDeps, sess *session.Session) error {
			return wantErr
		},
		func(ctx context.Context, p string, d testDeps) (string, error) {
			handlerCalls++
			return p, nil
		},
		testDeps{},
	)

	sess := session.Unauthenticated(session.UnauthenticatedParams{})
	_, err := uc(context.Background(), "in", sess)
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
	if handlerCalls != 0 {
		t.Error("handler ran after authorize failed")
	}
	if sess.IsAuthorized() {
		t.Error("session marked authorized after a failed check")
	}
	if !sess.IsAuthorizing() {
		t.Error("session should stay in authorizing after a failed check")
	}
}

func TestNewUseCase_NilSessionIsAnonymous(t *testing.T) {
	var seen *session.Session
	uc := NewUseCase(
		func(ctx context.Context, p string, d testDeps, sess *session.Session) error {
			seen = sess
			return nil
		},
		func(ctx context.Context, p string, d testDeps) (string, error) {
			return p, nil
		},
		testDeps{},
	)

	if _, err := uc(context.Background(), "in", nil); err != nil {
		t.Fatalf("use case: %v", err)
	}
	if seen == nil {
		t.Fatal("authorize did not receive a session")
	}
	if seen.IsAuthenticated() {
		t.Error("substituted session must be anonymous")
	}
}

func TestNewUseCase_HandlerErrorPropagates(t *testing.T) {
	wantErr := errors.New("boom")
	uc := NewUseCase(
		func(ctx context.Context, p string, d testDeps, sess *session.Session) error {
			return nil
		},
		func(ctx context.Context, p string, d testDeps) (string, error) {
			return "", wantErr
		},
		testDeps{},
	)

	sess, _ := session.User(session.UserParams{DistinctID: "u1"})
	if _, err := uc(context.Background(), "in", sess); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
