package models

import "fmt"

// LoginField names the account attribute used as the unique login credential.
// It is a deployment-wide choice, never stored per account.
type LoginField string

const (
	LoginFieldEmail LoginField = "email"
	LoginFieldPhone LoginField = "phone"
)

// ParseLoginField resolves a configured login field name.
func ParseLoginField(s string) (LoginField, error) {
	switch LoginField(s) {
	case LoginFieldEmail, LoginFieldPhone:
		return LoginField(s), nil
	default:
		return "", fmt.Errorf("unsupported login field %q (expected email or phone)", s)
	}
}

func (f LoginField) String() string {
	return string(f)
}
