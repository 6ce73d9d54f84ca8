package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/store"
)

// GroupStore implements store.GroupStore using PostgreSQL.
type GroupStore struct {
	pool *pgxpool.Pool
}

var _ store.GroupStore = (*GroupStore)(nil)

// NewGroupStore creates a new PostgreSQL-backed group store.
func NewGroupStore(pool *pgxpool.Pool) *GroupStore {
	return &GroupStore{pool: pool}
}

// Create creates a new group.
func (s *GroupStore) Create(ctx context.Context, group *models.Group) error {
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO groups (group_id, name, created_at) VALUES ($1, $2, $3)`,
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		mapped := mapPostgresError(err, nil)
		if errors.Is(mapped, store.ErrGroupAlreadyExists) {
			return store.ErrGroupAlreadyExists
		}
		return fmt.Errorf("failed to create group: %w", mapped)
	}

	log.Debug().Str("group_id", group.ID.String()).Str("name", group.Name).Msg("Created group")

	return nil
}

// GetByName retrieves a group by name.
func (s *GroupStore) GetByName(ctx context.Context, name string) (*models.Group, error) {
	var g models.Group
	err := s.pool.QueryRow(ctx,
		`SELECT group_id, name, created_at FROM groups WHERE name = $1`, name,
	).Scan(&g.ID, &g.Name, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return &g, nil
}

// List returns all groups ordered by name.
func (s *GroupStore) List(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.pool.Query(ctx, `SELECT group_id, name, created_at FROM groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// Delete removes a group. Memberships are removed by ON DELETE CASCADE.
func (s *GroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM groups WHERE group_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrGroupNotFound
	}

	log.Debug().Str("group_id", id.String()).Msg("Deleted group")

	return nil
}

// AddMember adds an account to a group. Adding an existing member is a no-op.
func (s *GroupStore) AddMember(ctx context.Context, groupID, accountID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO account_groups (group_id, account_id) VALUES ($1, $2)
		ON CONFLICT (group_id, account_id) DO NOTHING
	`, groupID, accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			if pgErr.ConstraintName == "account_groups_group_id_fkey" {
				return store.ErrGroupNotFound
			}
			return store.ErrAccountNotFound
		}
		return fmt.Errorf("failed to add group member: %w", mapPostgresError(err, nil))
	}

	return nil
}

// Members returns the IDs of the accounts in a group.
func (s *GroupStore) Members(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM groups WHERE group_id = $1)`, groupID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check group: %w", err)
	}
	if !exists {
		return nil, store.ErrGroupNotFound
	}

	rows, err := s.pool.Query(ctx,
		`SELECT account_id FROM account_groups WHERE group_id = $1 ORDER BY account_id::text`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan group members: %w", err)
	}

	return ids, nil
}
