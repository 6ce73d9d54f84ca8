package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account represents a user identity.
// Email and Phone are optional but unique when present; which of them is the
// login credential is decided by the deployment's LoginField.
type Account struct {
	ID           uuid.UUID // UUIDv7
	Email        *string
	Phone        *string // E.164-like, e.g. +15551234567
	PasswordHash string  // bcrypt

	FirstName string
	LastName  string

	// Authorization
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool // implies IsStaff

	DateJoined time.Time
	LastLogin  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LoginValue returns the value of the given login field, or "" when unset.
func (a *Account) LoginValue(field LoginField) string {
	var v *string
	switch field {
	case LoginFieldEmail:
		v = a.Email
	case LoginFieldPhone:
		v = a.Phone
	}
	if v == nil {
		return ""
	}
	return *v
}

// DisplayName returns "First Last" when both names are set, otherwise the
// login value, otherwise "User".
func (a *Account) DisplayName(field LoginField) string {
	if a.FirstName != "" && a.LastName != "" {
		return a.FirstName + " " + a.LastName
	}
	if v := a.LoginValue(field); v != "" {
		return v
	}
	return "User"
}

// HasPrivilege reports whether the account can use the admin surface.
func (a *Account) HasPrivilege() bool {
	return a.IsActive && a.IsStaff
}

// StringPtr returns nil for blank strings so optional unique columns stay NULL.
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
