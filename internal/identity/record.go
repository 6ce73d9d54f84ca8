package identity

import "github.com/wolfeidau/gatehouse/internal/models"

// Record is a prospective account. Email and Phone may both be set; the
// configured login field decides which one is required.
type Record struct {
	Email       string
	Phone       string
	Password    string
	FirstName   string
	LastName    string
	IsSuperuser bool
}

// Login returns the value of the given login field.
func (r *Record) Login(field models.LoginField) string {
	switch field {
	case models.LoginFieldEmail:
		return r.Email
	case models.LoginFieldPhone:
		return r.Phone
	default:
		return ""
	}
}

// SetLogin assigns value to the given login field.
func (r *Record) SetLogin(field models.LoginField, value string) {
	switch field {
	case models.LoginFieldEmail:
		r.Email = value
	case models.LoginFieldPhone:
		r.Phone = value
	}
}
