package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wolfeidau/gatehouse/internal/models"
)

// Sentinel errors for account store operations
var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
)

// ConflictError is returned by Create when a unique attribute is already taken.
// It matches ErrAccountAlreadyExists via errors.Is.
type ConflictError struct {
	Field string // "email", "phone" or "id"
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("account with %s %q already exists", e.Field, e.Value)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrAccountAlreadyExists
}

// AccountStore persists accounts. Implementations must enforce uniqueness of
// email and phone atomically with the insert.
type AccountStore interface {
	// Create inserts a new account.
	// Returns *ConflictError if the ID, email or phone is already taken.
	Create(ctx context.Context, account *models.Account) error

	// Exists reports whether an account has the given value for field.
	Exists(ctx context.Context, field models.LoginField, value string) (bool, error)

	// Get retrieves an account by ID.
	// Returns ErrAccountNotFound if the account doesn't exist.
	Get(ctx context.Context, id uuid.UUID) (*models.Account, error)

	// GetByLogin retrieves an account by its email or phone.
	// Returns ErrAccountNotFound if no account matches.
	GetByLogin(ctx context.Context, field models.LoginField, value string) (*models.Account, error)

	// List returns accounts matching opts, ordered by email then phone.
	List(ctx context.Context, opts ListAccountsOptions) ([]*models.Account, error)
}

// ListAccountsOptions specifies filters for listing accounts
type ListAccountsOptions struct {
	Search    string // case-insensitive substring of email, phone, first or last name
	StaffOnly bool
	Limit     int // 0 = no limit
}
