// Package config resolves process settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/wolfeidau/gatehouse/internal/models"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Settings is resolved once at startup and passed explicitly to the components that need it.
type Settings struct {
	Environment    string   `env:"ENVIRONMENT"      envDefault:"development"`
	LoginFieldName string   `env:"AUTH_LOGIN_FIELD" envDefault:"email"`
	UsersJSONPath  string   `env:"USERS_JSON_PATH"  envDefault:"users.json"`
	DatabaseHost   string   `env:"DATABASE_HOST"    envDefault:"localhost"`
	Hosts          []string `env:"ALLOWED_HOSTS"    envSeparator:","`
	Port           int      `env:"DOCKER_PORT"      envDefault:"8000"`

	// Resolved by Load.
	Debug        bool
	LoginField   models.LoginField
	AllowedHosts []string
}

// AdminCredentials seed the first privileged account.
type AdminCredentials struct {
	Login    string `env:"ADMIN_LOGIN"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Complete reports whether all three values are set.
func (c AdminCredentials) Complete() bool {
	return c.Login != "" && c.Email != "" && c.Password != ""
}

// LoadDotEnv loads variables from the given files without overriding the
// process environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load parses Settings from the environment and resolves the derived fields.
func Load() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := s.resolve(); err != nil {
		return nil, err
	}

	return &s, nil
}

// LoadAdminCredentials reads ADMIN_LOGIN, ADMIN_EMAIL and ADMIN_PASSWORD.
func LoadAdminCredentials() (AdminCredentials, error) {
	var c AdminCredentials
	if err := env.Parse(&c); err != nil {
		return AdminCredentials{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

func (s *Settings) resolve() error {
	field, err := models.ParseLoginField(strings.ToLower(strings.TrimSpace(s.LoginFieldName)))
	if err != nil {
		return fmt.Errorf("AUTH_LOGIN_FIELD: %w", err)
	}
	s.LoginField = field

	if s.Environment == "" {
		s.Environment = EnvironmentDevelopment
	}

	// every value other than production selects the development settings
	if s.Environment == EnvironmentProduction {
		s.Debug = false
		s.AllowedHosts = trimHosts(s.Hosts)
		return nil
	}

	s.Debug = true
	if s.DatabaseHost != "localhost" {
		s.AllowedHosts = []string{"*"}
	} else {
		s.AllowedHosts = []string{"127.0.0.1", "localhost"}
	}

	return nil
}

func trimHosts(hosts []string) []string {
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
