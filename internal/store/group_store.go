package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wolfeidau/gatehouse/internal/models"
)

// Sentinel errors for group store operations
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrGroupAlreadyExists = errors.New("group already exists")
)

// GroupStore manages named permission groups and their members.
type GroupStore interface {
	// Create creates a new group.
	// Returns ErrGroupAlreadyExists if the name is taken.
	Create(ctx context.Context, group *models.Group) error

	// GetByName retrieves a group by its unique name.
	// Returns ErrGroupNotFound if the group doesn't exist.
	GetByName(ctx context.Context, name string) (*models.Group, error)

	// List returns all groups ordered by name.
	List(ctx context.Context) ([]*models.Group, error)

	// Delete removes a group and its memberships.
	// Returns ErrGroupNotFound if the group doesn't exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddMember adds an account to a group. Adding an existing member is a no-op.
	// Returns ErrGroupNotFound or ErrAccountNotFound for unknown IDs.
	AddMember(ctx context.Context, groupID, accountID uuid.UUID) error

	// Members returns the IDs of accounts in a group.
	Members(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)
}
