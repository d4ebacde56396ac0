package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"canopy/backend/internal/workspace/domain"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a workspace repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const workspaceColumns = `id, name, user_ids, created_at, updated_at`

// GetWorkspaceByID returns the workspace for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetWorkspaceByID(ctx context.Context, id string) (*domain.Workspace, error) {
	const query = `SELECT ` + workspaceColumns + ` FROM workspaces WHERE id = $1`
	w, err := scanWorkspace(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

// GetWorkspacesByUserID returns all workspaces whose member list contains
// the user.
func (r *PostgresRepository) GetWorkspacesByUserID(ctx context.Context, userID string) ([]*domain.Workspace, error) {
	const query = `SELECT ` + workspaceColumns + ` FROM workspaces WHERE $1 = ANY(user_ids) ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Workspace
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// CreateWorkspace persists the workspace. The workspace must have ID set.
func (r *PostgresRepository) CreateWorkspace(ctx context.Context, w *domain.Workspace) error {
	const query = `
		INSERT INTO workspaces (` + workspaceColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, w.ID, w.Name, w.UserIDs, w.CreatedAt, w.UpdatedAt)
	return err
}

// AddUserToWorkspace appends the user to user_ids, guarding against a
// concurrent duplicate append in the update itself.
func (r *PostgresRepository) AddUserToWorkspace(ctx context.Context, workspaceID, userID string) error {
	const query = `
		UPDATE workspaces
		SET user_ids = array_append(user_ids, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(user_ids))
	`
	_, err := r.pool.Exec(ctx, query, workspaceID, userID)
	return err
}

func scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var w domain.Workspace
	err := row.Scan(&w.ID, &w.Name, &w.UserIDs, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
