package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/store"
)

const accountColumns = `
	account_id, email, phone, password_hash,
	first_name, last_name,
	is_active, is_staff, is_superuser,
	date_joined, last_login, created_at, updated_at`

// AccountStore implements store.AccountStore using PostgreSQL.
// Uniqueness of email and phone is enforced by the accounts_email_key and
// accounts_phone_key constraints.
type AccountStore struct {
	pool *pgxpool.Pool
}

var _ store.AccountStore = (*AccountStore)(nil)

// NewAccountStore creates a new PostgreSQL-backed account store.
// It shares the connection pool with other stores.
func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

// Create inserts a new account.
func (s *AccountStore) Create(ctx context.Context, account *models.Account) error {
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = now
	}
	if account.DateJoined.IsZero() {
		account.DateJoined = now
	}

	query := `
		INSERT INTO accounts (` + accountColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := s.pool.Exec(ctx, query,
		account.ID,
		account.Email,
		account.Phone,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.IsActive,
		account.IsStaff,
		account.IsSuperuser,
		account.DateJoined,
		account.LastLogin,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		mapped := mapPostgresError(err, account)
		if errors.Is(mapped, store.ErrAccountAlreadyExists) {
			return mapped
		}
		return fmt.Errorf("failed to create account: %w", mapped)
	}

	log.Debug().
		Str("account_id", account.ID.String()).
		Bool("is_superuser", account.IsSuperuser).
		Msg("Created account")

	return nil
}

// Exists reports whether an account has value for field.
func (s *AccountStore) Exists(ctx context.Context, field models.LoginField, value string) (bool, error) {
	column, err := loginColumn(field)
	if err != nil {
		return false, err
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE ` + column + ` = $1)`
	if err := s.pool.QueryRow(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account %s: %w", column, mapPostgresError(err, nil))
	}

	return exists, nil
}

// Get retrieves an account by ID.
func (s *AccountStore) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`

	account, err := scanAccount(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// GetByLogin retrieves an account by its email or phone.
func (s *AccountStore) GetByLogin(ctx context.Context, field models.LoginField, value string) (*models.Account, error) {
	column, err := loginColumn(field)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + column + ` = $1`

	account, err := scanAccount(s.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by %s: %w", column, err)
	}

	return account, nil
}

// List returns accounts matching opts, ordered by email then phone.
func (s *AccountStore) List(ctx context.Context, opts store.ListAccountsOptions) ([]*models.Account, error) {
	var (
		where []string
		args  []any
	)

	if opts.StaffOnly {
		where = append(where, "is_staff")
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(email ILIKE $%d OR phone ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", n, n, n, n))
	}

	query := `SELECT ` + accountColumns + ` FROM accounts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY email NULLS LAST, phone NULLS LAST"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Phone,
		&a.PasswordHash,
		&a.FirstName,
		&a.LastName,
		&a.IsActive,
		&a.IsStaff,
		&a.IsSuperuser,
		&a.DateJoined,
		&a.LastLogin,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// loginColumn maps a login field to its column. Column names are never taken
// from user input.
func loginColumn(field models.LoginField) (string, error) {
	switch field {
	case models.LoginFieldEmail:
		return "email", nil
	case models.LoginFieldPhone:
		return "phone", nil
	default:
		return "", fmt.Errorf("unsupported login field %q", field)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
