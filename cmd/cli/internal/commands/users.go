package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/wolfeidau/gatehouse/internal/store"
)

// UsersCmd inspects accounts.
type UsersCmd struct {
	List UsersListCmd `cmd:"" help:"List accounts"`
}

// UsersListCmd lists accounts.
type UsersListCmd struct {
	Search    string     `help:"filter by email, phone or name (case-insensitive)"`
	StaffOnly bool       `help:"only list staff accounts" default:"false"`
	Limit     int        `help:"maximum number of accounts" default:"100"`
	Store     StoreFlags `embed:""`
}

func (c *UsersListCmd) Run(ctx context.Context, globals *Globals) error {
	stores, release, err := globals.openStores(ctx, c.Store)
	if err != nil {
		return err
	}
	defer release()

	accounts, err := stores.Accounts.List(ctx, store.ListAccountsOptions{
		Search:    c.Search,
		StaffOnly: c.StaffOnly,
		Limit:     c.Limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	out := globals.out()
	if len(accounts) == 0 {
		fmt.Fprintln(out, "No accounts found.")
		return nil
	}

	field := globals.Settings.LoginField

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLOGIN\tNAME\tSTAFF\tSUPERUSER\tJOINED")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\t%s\n",
			a.ID, a.LoginValue(field), a.DisplayName(field), a.IsStaff, a.IsSuperuser,
			a.DateJoined.Format(time.DateOnly))
	}

	return w.Flush()
}
