// Package bootstrap seeds accounts from operator input: a single privileged
// account from the environment, or a batch of accounts from a file.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/gatehouse/internal/config"
	"github.com/wolfeidau/gatehouse/internal/identity"
	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/report"
	"github.com/wolfeidau/gatehouse/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrIncompleteBootstrapConfig = errors.New("not all environment variables are set (ADMIN_LOGIN, ADMIN_EMAIL, ADMIN_PASSWORD)")
	ErrDebugRequired             = errors.New("this command can only be run in DEBUG mode")
	ErrInvalidRecord             = errors.New("invalid user data format")
	ErrUnreadableBatch           = errors.New("unreadable batch file")
)

// Seeder is the entry point for both bootstrap paths.
type Seeder struct {
	creator  *identity.Creator
	reporter *report.Reporter
	debug    bool
	metrics  *telemetry.Metrics
}

// NewSeeder creates a Seeder.
func NewSeeder(cfg Config) (*Seeder, error) {
	if cfg.Creator == nil {
		return nil, fmt.Errorf("creator is required")
	}
	if cfg.Reporter == nil {
		return nil, fmt.Errorf("reporter is required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = telemetry.GetMetrics()
	}

	return &Seeder{
		creator:  cfg.Creator,
		reporter: cfg.Reporter,
		debug:    cfg.Debug,
		metrics:  cfg.Metrics,
	}, nil
}

// SeedAdmin creates one privileged account from creds. Every outcome is
// reported; the returned error is nil only on creation. Use IsFatal to tell
// an already-satisfied or rejected seed from a persistence failure.
func (s *Seeder) SeedAdmin(ctx context.Context, creds config.AdminCredentials) (*models.Account, error) {
	if !creds.Complete() {
		s.reporter.Errorf("Not all environment variables are set (ADMIN_LOGIN, ADMIN_EMAIL, ADMIN_PASSWORD)")
		return nil, ErrIncompleteBootstrapConfig
	}

	field := s.creator.LoginField()

	// when email is the login field the login identifier wins over ADMIN_EMAIL
	rec := identity.Record{
		Email:       creds.Email,
		Password:    creds.Password,
		IsSuperuser: true,
	}
	rec.SetLogin(field, creds.Login)

	account, err := s.creator.CreateSuperuser(ctx, rec)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrDuplicateField):
			s.reporter.Warningf("User %q already exists", creds.Login)
			s.recordSkip(ctx, err)
		case isRejection(err):
			s.reporter.Errorf("Error creating user: %s", err)
			s.recordSkip(ctx, err)
		default:
			s.reporter.Errorf("Error creating user: %s", err)
			s.metrics.AccountCreateErrorsTotal.Add(ctx, 1)
		}
		return nil, err
	}

	s.recordCreated(ctx, account)
	s.reporter.Successf("Superuser %q created successfully", account.LoginValue(field))

	log.Info().Str("account_id", account.ID.String()).Msg("Admin account seeded")

	return account, nil
}

// IsFatal reports whether err from SeedAdmin or ImportUsers should end the
// process with a failure. Missing configuration, rejected input and accounts
// that already exist are reported to the operator and are not fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrIncompleteBootstrapConfig),
		errors.Is(err, ErrDebugRequired),
		errors.Is(err, ErrUnreadableBatch),
		isRejection(err):
		return false
	}
	return true
}

// isRejection reports whether err is a validation outcome rather than a
// persistence failure.
func isRejection(err error) bool {
	return errors.Is(err, identity.ErrMissingLoginValue) ||
		errors.Is(err, identity.ErrMissingRequiredField) ||
		errors.Is(err, identity.ErrDuplicateField) ||
		errors.Is(err, identity.ErrInvalidField) ||
		errors.Is(err, ErrInvalidRecord)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, identity.ErrDuplicateField):
		return "duplicate"
	case errors.Is(err, identity.ErrInvalidField), errors.Is(err, ErrInvalidRecord):
		return "invalid"
	default:
		return "missing"
	}
}

func (s *Seeder) recordCreated(ctx context.Context, account *models.Account) {
	s.metrics.AccountsCreatedTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.Bool("superuser", account.IsSuperuser)))
}

func (s *Seeder) recordSkip(ctx context.Context, err error) {
	s.metrics.AccountsSkippedTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", rejectionReason(err))))
}
