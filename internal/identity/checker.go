package identity

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/store"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordBytes = 72

var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// Checker decides whether a record may be created. Its uniqueness lookups are
// a pre-check only; the store's unique constraints have the final word.
type Checker struct {
	accounts   store.AccountStore
	loginField models.LoginField
}

// NewChecker creates a checker for the given login field.
func NewChecker(accounts store.AccountStore, loginField models.LoginField) *Checker {
	return &Checker{accounts: accounts, loginField: loginField}
}

// Check validates a normalized record. It returns *MissingFieldError,
// *InvalidFieldError or *DuplicateFieldError, or a wrapped store error.
func (c *Checker) Check(ctx context.Context, rec *Record) error {
	if strings.TrimSpace(rec.Login(c.loginField)) == "" {
		return &MissingFieldError{Field: c.loginField.String()}
	}
	if rec.Password == "" {
		return &MissingFieldError{Field: "password"}
	}

	if len(rec.Password) > maxPasswordBytes {
		return &InvalidFieldError{Field: "password", Value: "***", Reason: "must be at most 72 bytes"}
	}
	if rec.Phone != "" && !phonePattern.MatchString(rec.Phone) {
		return &InvalidFieldError{Field: "phone", Value: rec.Phone, Reason: "must be 9 to 15 digits with an optional leading +"}
	}

	for _, field := range []models.LoginField{models.LoginFieldEmail, models.LoginFieldPhone} {
		value := rec.Login(field)
		if value == "" {
			continue
		}

		exists, err := c.accounts.Exists(ctx, field, value)
		if err != nil {
			return fmt.Errorf("failed to check %s uniqueness: %w", field, err)
		}
		if exists {
			return &DuplicateFieldError{Field: field.String(), Value: value}
		}
	}

	return nil
}
