package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"canopy/backend/internal/workspacemember/domain"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a membership repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const memberColumns = `id, workspace_id, user_id, role, created_at, updated_at`

// GetMember returns the membership for the given workspace and user, or
// nil if not found. It returns an error only for database failures.
func (r *PostgresRepository) GetMember(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error) {
	const query = `SELECT ` + memberColumns + ` FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`
	m, err := scanMember(r.pool.QueryRow(ctx, query, workspaceID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// GetMembersByWorkspaceID returns all membership records for the workspace.
func (r *PostgresRepository) GetMembersByWorkspaceID(ctx context.Context, workspaceID string) ([]*domain.WorkspaceMember, error) {
	const query = `SELECT ` + memberColumns + ` FROM workspace_members WHERE workspace_id = $1 ORDER BY created_at`
	return r.queryMembers(ctx, query, workspaceID)
}

// GetMembersByUserID returns all membership records for the user.
func (r *PostgresRepository) GetMembersByUserID(ctx context.Context, userID string) ([]*domain.WorkspaceMember, error) {
	const query = `SELECT ` + memberColumns + ` FROM workspace_members WHERE user_id = $1 ORDER BY created_at`
	return r.queryMembers(ctx, query, userID)
}

// IsMember reports whether the user has a membership record in the workspace.
func (r *PostgresRepository) IsMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM workspace_members WHERE workspace_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, workspaceID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// AddMember persists the membership record. The record must have ID set.
func (r *PostgresRepository) AddMember(ctx context.Context, m *domain.WorkspaceMember) error {
	const query = `
		INSERT INTO workspace_members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		m.ID, m.WorkspaceID, m.UserID, string(m.Role), m.JoinedAt, m.UpdatedAt,
	)
	return err
}

// UpdateMemberRole sets the member's role and bumps updated_at.
func (r *PostgresRepository) UpdateMemberRole(ctx context.Context, workspaceID, userID string, role domain.Role) error {
	const query = `UPDATE workspace_members SET role = $3, updated_at = now() WHERE workspace_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, workspaceID, userID, string(role))
	return err
}

// RemoveMember deletes the membership record. Deleting a missing record is
// not an error; existence checks belong to the caller.
func (r *PostgresRepository) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	const query = `DELETE FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, workspaceID, userID)
	return err
}

func (r *PostgresRepository) queryMembers(ctx context.Context, query string, arg string) ([]*domain.WorkspaceMember, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.WorkspaceMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMember(row pgx.Row) (*domain.WorkspaceMember, error) {
	var m domain.WorkspaceMember
	var role string
	err := row.Scan(&m.ID, &m.WorkspaceID, &m.UserID, &role, &m.JoinedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Role = domain.Role(role)
	return &m, nil
}
