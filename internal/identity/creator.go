package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// Creator runs the normalize, check, hash and persist pipeline for one account.
type Creator struct {
	accounts   store.AccountStore
	checker    *Checker
	loginField models.LoginField
	hashCost   int
}

// Option configures a Creator.
type Option func(*Creator)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(c *Creator) {
		c.hashCost = cost
	}
}

// NewCreator creates a Creator for the deployment's login field.
func NewCreator(accounts store.AccountStore, loginField models.LoginField, opts ...Option) *Creator {
	c := &Creator{
		accounts:   accounts,
		checker:    NewChecker(accounts, loginField),
		loginField: loginField,
		hashCost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoginField returns the login field accounts are created with.
func (c *Creator) LoginField() models.LoginField {
	return c.loginField
}

// Normalize normalizes the login field, which must be present, and any other
// email or phone the record carries.
func (c *Creator) Normalize(rec Record) (Record, error) {
	login, err := NormalizeLogin(c.loginField, rec.Login(c.loginField))
	if err != nil {
		return rec, fmt.Errorf("%w: %s", err, c.loginField)
	}
	rec.SetLogin(c.loginField, login)

	if c.loginField != models.LoginFieldEmail && rec.Email != "" {
		rec.Email = NormalizeEmail(rec.Email)
	}
	if c.loginField != models.LoginFieldPhone && rec.Phone != "" {
		rec.Phone = NormalizePhone(rec.Phone)
	}

	return rec, nil
}

// CreateUser creates a regular account.
func (c *Creator) CreateUser(ctx context.Context, rec Record) (*models.Account, error) {
	return c.create(ctx, rec, false)
}

// CreateSuperuser creates a privileged account with both IsStaff and IsSuperuser set.
func (c *Creator) CreateSuperuser(ctx context.Context, rec Record) (*models.Account, error) {
	return c.create(ctx, rec, true)
}

func (c *Creator) create(ctx context.Context, rec Record, superuser bool) (*models.Account, error) {
	rec, err := c.Normalize(rec)
	if err != nil {
		return nil, err
	}

	if err := c.checker.Check(ctx, &rec); err != nil {
		return nil, err
	}

	hash, err := HashPassword(rec.Password, c.hashCost)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account id: %w", err)
	}

	account := &models.Account{
		ID:           id,
		Email:        models.StringPtr(rec.Email),
		Phone:        models.StringPtr(rec.Phone),
		PasswordHash: hash,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	}

	if err := c.accounts.Create(ctx, account); err != nil {
		// lost the race with a concurrent insert after the pre-check passed
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			return nil, &DuplicateFieldError{Field: conflict.Field, Value: conflict.Value}
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	log.Debug().
		Str("account_id", account.ID.String()).
		Str("login_field", c.loginField.String()).
		Bool("superuser", superuser).
		Msg("Account created")

	return account, nil
}
