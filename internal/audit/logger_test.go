package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"canopy/backend/internal/audit/domain"
)

// mockAuditRepo implements audit repository interface for tests.
type mockAuditRepo struct {
	entries   []*domain.AuditLog
	createErr error
}

func (m *mockAuditRepo) GetByID(ctx context.Context, id string) (*domain.AuditLog, error) {
	return nil, nil
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) ListByActor(ctx context.Context, actorID string, limit, offset int32) ([]*domain.AuditLog, error) {
	return nil, nil
}

func TestLogger_LogEvent_Success(t *testing.T) {
	repo := &mockAuditRepo{}
	ipExtractor := func(ctx context.Context) string {
		return "192.168.1.1"
	}
	logger := NewLogger(repo, ipExtractor, zerolog.Nop())
	ctx := context.Background()

	logger.LogEvent(ctx, "user-1", ActionSignIn, "session", "detail")

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.ActorID != "user-1" {
		t.Errorf("actor_id = %q, want %q", entry.ActorID, "user-1")
	}
	if entry.Action != ActionSignIn {
		t.Errorf("action = %q, want %q", entry.Action, ActionSignIn)
	}
	if entry.Resource != "session" {
		t.Errorf("resource = %q, want %q", entry.Resource, "session")
	}
	if entry.IP != "192.168.1.1" {
		t.Errorf("ip = %q, want %q", entry.IP, "192.168.1.1")
	}
	if entry.Detail != "detail" {
		t.Errorf("detail = %q, want %q", entry.Detail, "detail")
	}
	if entry.ID == "" {
		t.Error("entry ID should be set")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("entry CreatedAt should be set")
	}
}

func TestLogger_LogEvent_NilIPExtractor(t *testing.T) {
	repo := &mockAuditRepo{}
	logger := NewLogger(repo, nil, zerolog.Nop())

	logger.LogEvent(context.Background(), "user-1", ActionSignOut, "session", "")

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	if repo.entries[0].IP != "unknown" {
		t.Errorf("ip = %q, want %q", repo.entries[0].IP, "unknown")
	}
}

func TestLogger_LogEvent_RepositoryError(t *testing.T) {
	repo := &mockAuditRepo{
		createErr: errors.New("database error"),
	}
	logger := NewLogger(repo, nil, zerolog.Nop())

	// Best-effort: must not panic or surface the error.
	logger.LogEvent(context.Background(), "user-1", ActionTokenRefresh, "token", "")
}

func TestLogger_LogEvent_NilRepo(t *testing.T) {
	logger := NewLogger(nil, nil, zerolog.Nop())

	// No-op when repo is nil.
	logger.LogEvent(context.Background(), "user-1", ActionSignIn, "session", "")
}
