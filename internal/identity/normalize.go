package identity

import (
	"strings"
	"unicode"

	"github.com/wolfeidau/gatehouse/internal/models"
)

// NormalizeLogin normalizes raw according to the configured login field.
// An empty value fails with ErrMissingLoginValue for every field. Fields
// without a normalization rule are returned unchanged.
func NormalizeLogin(field models.LoginField, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrMissingLoginValue
	}

	switch field {
	case models.LoginFieldEmail:
		return NormalizeEmail(raw), nil
	case models.LoginFieldPhone:
		phone := NormalizePhone(raw)
		if phone == "" {
			return "", ErrMissingLoginValue
		}
		return phone, nil
	default:
		return raw, nil
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the domain.
// The local part is case sensitive and kept as given.
func NormalizeEmail(raw string) string {
	email := strings.TrimSpace(raw)

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// NormalizePhone drops whitespace, hyphens and parentheses and guarantees a
// leading "+". It returns "" when nothing is left.
func NormalizePhone(raw string) string {
	phone := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, raw)

	if phone == "" {
		return ""
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	return phone
}
