package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/store"
)

// Unique constraints declared in migrations/1_initial_schema.sql.
const (
	constraintAccountsPK       = "accounts_pkey"
	constraintAccountsEmailKey = "accounts_email_key"
	constraintAccountsPhoneKey = "accounts_phone_key"
	constraintGroupsNameKey    = "groups_name_key"
)

// mapPostgresError translates constraint violations into store errors. Account
// key violations become a ConflictError carrying the value from account, which
// is nil for statements that do not insert one. Other errors keep their cause
// and gain the class of failure in the message.
func mapPostgresError(err error, account *models.Account) error {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return err
	}

	if pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case constraintAccountsEmailKey:
			return &store.ConflictError{Field: "email", Value: conflictValue(account, "email")}
		case constraintAccountsPhoneKey:
			return &store.ConflictError{Field: "phone", Value: conflictValue(account, "phone")}
		case constraintAccountsPK:
			return &store.ConflictError{Field: "id", Value: conflictValue(account, "id")}
		case constraintGroupsNameKey:
			return store.ErrGroupAlreadyExists
		}
	}

	class := "postgres error"
	switch {
	case pgErr.Code == pgerrcode.UniqueViolation:
		class = "unique constraint violation"
	case pgErr.Code == pgerrcode.ForeignKeyViolation:
		class = "foreign key violation"
	case pgErr.Code == pgerrcode.CheckViolation:
		class = "check constraint violation"
	case pgErr.Code == pgerrcode.QueryCanceled:
		class = "query canceled"
	case pgerrcode.IsConnectionException(pgErr.Code), pgerrcode.IsOperatorIntervention(pgErr.Code):
		class = "database unavailable"
	case pgerrcode.IsInsufficientResources(pgErr.Code):
		class = "database resource limit"
	}

	if pgErr.ConstraintName != "" {
		return fmt.Errorf("%s: %s: %w", class, pgErr.ConstraintName, err)
	}
	return fmt.Errorf("%s [%s]: %w", class, pgErr.Code, err)
}

func conflictValue(account *models.Account, field string) string {
	if account == nil {
		return ""
	}
	switch field {
	case "email":
		return deref(account.Email)
	case "phone":
		return deref(account.Phone)
	default:
		return account.ID.String()
	}
}

// isUndefinedTable reports whether err is PostgreSQL's "relation does not exist".
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable
}
