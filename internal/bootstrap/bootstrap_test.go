package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/gatehouse/internal/config"
	"github.com/wolfeidau/gatehouse/internal/identity"
	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/report"
	"github.com/wolfeidau/gatehouse/internal/store"
	"github.com/wolfeidau/gatehouse/internal/store/memory"
	"github.com/wolfeidau/gatehouse/internal/telemetry"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/crypto/bcrypt"
)

type harness struct {
	seeder   *Seeder
	accounts *memory.AccountStore
	out      *bytes.Buffer
}

func newHarness(t *testing.T, accounts store.AccountStore, field models.LoginField, debug bool) *harness {
	t.Helper()

	mem, _ := accounts.(*memory.AccountStore)
	out := &bytes.Buffer{}

	seeder, err := NewSeeder(Config{
		Creator:  identity.NewCreator(accounts, field, identity.WithHashCost(bcrypt.MinCost)),
		Reporter: report.NoColor(out),
		Debug:    debug,
		Metrics:  telemetry.NewMetrics(noop.NewMeterProvider()),
	})
	require.NoError(t, err)

	return &harness{seeder: seeder, accounts: mem, out: out}
}

func (h *harness) lines() []string {
	return strings.Split(strings.TrimSpace(h.out.String()), "\n")
}

func (h *harness) count(t *testing.T) int {
	t.Helper()
	accounts, err := h.accounts.List(context.Background(), store.ListAccountsOptions{})
	require.NoError(t, err)
	return len(accounts)
}

// failingStore accepts every pre-check and fails every insert.
type failingStore struct {
	*memory.AccountStore
}

func (s *failingStore) Create(context.Context, *models.Account) error {
	return errors.New("connection refused")
}

func TestNewSeeder(t *testing.T) {
	_, err := NewSeeder(Config{})
	require.Error(t, err)

	_, err = NewSeeder(Config{Creator: identity.NewCreator(memory.NewAccountStore(), models.LoginFieldEmail)})
	require.Error(t, err)
}

func TestSeeder_SeedAdmin(t *testing.T) {
	ctx := context.Background()
	creds := config.AdminCredentials{
		Login:    "Admin@Example.com",
		Email:    "other@example.com",
		Password: "secret",
	}

	t.Run("incomplete config creates nothing", func(t *testing.T) {
		h := newHarness(t, memory.NewAccountStore(), models.LoginFieldEmail, false)

		_, err := h.seeder.SeedAdmin(ctx, config.AdminCredentials{Login: "admin@example.com", Email: "admin@example.com"})
		require.ErrorIs(t, err, ErrIncompleteBootstrapConfig)
		require.False(t, IsFatal(err))
		require.Equal(t, 0, h.count(t))
		require.Equal(t, []string{
			"ERROR: Not all environment variables are set (ADMIN_LOGIN, ADMIN_EMAIL, ADMIN_PASSWORD)",
		}, h.lines())
	})

	t.Run("second run is idempotent", func(t *testing.T) {
		h := newHarness(t, memory.NewAccountStore(), models.LoginFieldEmail, false)

		account, err := h.seeder.SeedAdmin(ctx, creds)
		require.NoError(t, err)
		require.True(t, account.IsStaff)
		require.True(t, account.IsSuperuser)
		require.Equal(t, "Admin@example.com", *account.Email, "login identifier wins over ADMIN_EMAIL")

		_, err = h.seeder.SeedAdmin(ctx, creds)
		require.ErrorIs(t, err, identity.ErrDuplicateField)
		require.False(t, IsFatal(err))

		require.Equal(t, 1, h.count(t))
		require.Equal(t, []string{
			`SUCCESS: Superuser "Admin@example.com" created successfully`,
			`WARNING: User "Admin@Example.com" already exists`,
		}, h.lines())
	})

	t.Run("phone login keeps admin email", func(t *testing.T) {
		h := newHarness(t, memory.NewAccountStore(), models.LoginFieldPhone, false)

		account, err := h.seeder.SeedAdmin(ctx, config.AdminCredentials{
			Login:    "+1 (555) 123-4567",
			Email:    "admin@example.com",
			Password: "secret",
		})
		require.NoError(t, err)
		require.Equal(t, "+15551234567", *account.Phone)
		require.Equal(t, "admin@example.com", *account.Email)
	})

	t.Run("invalid login is reported", func(t *testing.T) {
		h := newHarness(t, memory.NewAccountStore(), models.LoginFieldPhone, false)

		_, err := h.seeder.SeedAdmin(ctx, config.AdminCredentials{Login: "12", Email: "admin@example.com", Password: "secret"})
		require.ErrorIs(t, err, identity.ErrInvalidField)
		require.False(t, IsFatal(err))
		require.True(t, strings.HasPrefix(h.out.String(), "ERROR: Error creating user: "))
		require.Equal(t, 0, h.count(t))
	})

	t.Run("persistence failure is fatal", func(t *testing.T) {
		h := newHarness(t, &failingStore{memory.NewAccountStore()}, models.LoginFieldEmail, false)

		_, err := h.seeder.SeedAdmin(ctx, creds)
		require.Error(t, err)
		require.True(t, IsFatal(err))
		require.Contains(t, h.out.String(), "connection refused")
	})
}

func writeBatch(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSeeder_ImportUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("requires debug", func(t *testing.T) {
		h := newHarness(t, memory.NewAccountStore(), models.LoginFieldEmail, false)
		path := writeBatch(t, "users.json", `[{"email":"a@example.com","password":"x"}]`)

		result, err := h.seeder.ImportUsers(ctx, path)
		require.ErrorIs(t, err, ErrDebugRequired)
		require.False(t, IsFatal(err))
		require.Equal(t, BatchResult{}, result)
		require.Equal(t, 0, h.count(t))
		require.Equal(t, []string{"ERROR: This command can only be run in DEBUG mode"}, h.lines())
	})

	t.Run("duplicate email skipped and batch continues", func(t *testing.T) {
		h := newHarness(t, memory.NewAccountStore(), models.LoginFieldEmail, true)
		path := writeBatch(t, "users.json", `[
			{"email": "jane@example.com", "password": "one"},
			{"email": "jane@example.com", "password": "two"},
			{"email": "john@example.com", "password": "three", "is_superuser": true}
		]`)

		result, err := h.seeder.ImportUsers(ctx, path)
		require.NoError(t, err)
		require.Equal(t, BatchResult{Created: 2, Skipped: 1}, result)
		require.Equal(t, 3, result.Total())
		require.Equal(t, []string{
			`SUCCESS: User "jane@example.com" created successfully`,
			`WARNING: Skipping user: user with email "jane@example.com" already exists`,
			`SUCCESS: Superuser "john@example.com" created successfully`,
		}, h.lines())

		jane, err := h.accounts.GetByLogin(ctx, models.LoginFieldEmail, "jane@example.com")
		require.NoError(t, err)
		require.False(t, jane.IsStaff)
		require.False(t, jane.IsSuperuser)
		require.True(t, identity.VerifyPassword(jane.PasswordHash, "one"))

		john, err := h.accounts.GetByLogin(ctx, models.LoginFieldEmail, "john@example.com")
		require.NoError(t, err)
		require.True(t, john.IsStaff)
		require.True(t, john.IsSuperuser)
	})

	t.Run("malformed records are skipped", func(t *testing.T) {
		h := newHarness(t, memory.NewAccountStore(), models.LoginFieldEmail, true)
		path := writeBatch(t, "users.json", `[
			"not an object",
			{"email": "a@example.com", "password": "x", "is_staff": true},
			{"email": "b@example.com", "password": 42},
			{"email": "c@example.com"},
			{"password": "x"},
			{"email": "d@example.com", "password": "x", "phone": "(555) 123-4567", "first_name": "Dee", "last_name": null}
		]`)

		result, err := h.seeder.ImportUsers(ctx, path)
		require.NoError(t, err)
		require.Equal(t, BatchResult{Created: 1, Skipped: 5}, result)

		lines := h.lines()
		require.Equal(t, "WARNING: Skipping user: invalid user data format", lines[0])
		require.Equal(t, `WARNING: Skipping user: invalid user data format: unknown field "is_staff"`, lines[1])
		require.Equal(t, "WARNING: Skipping user: invalid user data format: password must be a string", lines[2])
		require.Equal(t, "WARNING: Skipping user: missing password", lines[3])
		require.Equal(t, "WARNING: Skipping user: login value is missing: email", lines[4])

		d, err := h.accounts.GetByLogin(ctx, models.LoginFieldPhone, "+5551234567")
		require.NoError(t, err)
		require.Equal(t, "d@example.com", *d.Email)
	})

	t.Run("yaml batch", func(t *testing.T) {
		h := newHarness(t, memory.NewAccountStore(), models.LoginFieldPhone, true)
		path := writeBatch(t, "users.yaml", `
- phone: "555-123-4567"
  password: secret
  is_superuser: true
- phone: 5551234567
  password: secret
`)

		result, err := h.seeder.ImportUsers(ctx, path)
		require.NoError(t, err)
		require.Equal(t, BatchResult{Created: 1, Skipped: 1}, result)
		require.Equal(t, `SUCCESS: Superuser "+5551234567" created successfully`, h.lines()[0])
	})

	t.Run("persistence errors do not stop the batch", func(t *testing.T) {
		h := newHarness(t, &failingStore{memory.NewAccountStore()}, models.LoginFieldEmail, true)
		path := writeBatch(t, "users.json", `[
			{"email": "a@example.com", "password": "x"},
			{"email": "b@example.com", "password": "x"}
		]`)

		result, err := h.seeder.ImportUsers(ctx, path)
		require.NoError(t, err)
		require.Equal(t, BatchResult{Failed: 2}, result)
		require.Equal(t, []string{
			"ERROR: Error creating user a@example.com: failed to create account: connection refused",
			"ERROR: Error creating user b@example.com: failed to create account: connection refused",
		}, h.lines())
	})

	t.Run("unreadable batch file", func(t *testing.T) {
		tests := []struct {
			name    string
			path    func(t *testing.T) string
			message string
		}{
			{
				name:    "missing",
				path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "users.json") },
				message: "users.json file not found at",
			},
			{
				name:    "not a list",
				path:    func(t *testing.T) string { return writeBatch(t, "users.json", `{"email":"a@example.com"}`) },
				message: "users.json should contain a list of users",
			},
			{
				name:    "invalid json",
				path:    func(t *testing.T) string { return writeBatch(t, "users.json", `[{`) },
				message: "invalid JSON format in users.json",
			},
			{
				name:    "invalid yaml",
				path:    func(t *testing.T) string { return writeBatch(t, "users.yml", "- [unclosed") },
				message: "invalid YAML format in users.yml",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h := newHarness(t, memory.NewAccountStore(), models.LoginFieldEmail, true)

				_, err := h.seeder.ImportUsers(ctx, tt.path(t))
				require.ErrorIs(t, err, ErrUnreadableBatch)
				require.False(t, IsFatal(err))

				var unreadable *unreadableBatchError
				require.ErrorAs(t, err, &unreadable)
				require.True(t, strings.HasPrefix(unreadable.Reason, tt.message), unreadable.Reason)

				require.True(t, strings.HasPrefix(h.out.String(), "ERROR: "+tt.message), h.out.String())
				require.NotContains(t, h.out.String(), ErrUnreadableBatch.Error())
			})
		}
	})
}

func TestUnreadableBatchError_KeepsCause(t *testing.T) {
	path := writeBatch(t, "users.json", `[{`)

	_, err := loadRecords(path)

	var syntaxErr *json.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	require.ErrorIs(t, err, ErrUnreadableBatch)
	require.True(t, strings.HasPrefix(err.Error(), "invalid JSON format in users.json: "), err.Error())
}

func TestIsFatal(t *testing.T) {
	require.False(t, IsFatal(nil))
	require.False(t, IsFatal(&identity.MissingFieldError{Field: "password"}))
	require.False(t, IsFatal(&identity.DuplicateFieldError{Field: "email", Value: "a@example.com"}))
	require.True(t, IsFatal(errors.New("connection refused")))
}
