package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/wolfeidau/gatehouse/internal/backend"
	"github.com/wolfeidau/gatehouse/internal/identity"
	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/store"
)

// lookupAccount finds an account by a login value as an operator would type it.
func lookupAccount(ctx context.Context, stores *backend.Stores, field models.LoginField, raw string) (*models.Account, error) {
	login, err := identity.NormalizeLogin(field, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}

	account, err := stores.Accounts.GetByLogin(ctx, field, login)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, fmt.Errorf("no account with %s %q", field, login)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}
