package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/store"
)

// GroupsCmd manages permission groups.
type GroupsCmd struct {
	Create    GroupsCreateCmd    `cmd:"" help:"Create a group"`
	List      GroupsListCmd      `cmd:"" help:"List groups"`
	Delete    GroupsDeleteCmd    `cmd:"" help:"Delete a group"`
	AddMember GroupsAddMemberCmd `cmd:"" name:"add-member" help:"Add an account to a group"`
	Members   GroupsMembersCmd   `cmd:"" help:"List the accounts in a group"`
}

type GroupsCreateCmd struct {
	Name  string     `arg:"" help:"group name"`
	Store StoreFlags `embed:""`
}

func (c *GroupsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	stores, release, err := globals.openStores(ctx, c.Store)
	if err != nil {
		return err
	}
	defer release()

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate group id: %w", err)
	}

	if err := stores.Groups.Create(ctx, &models.Group{ID: id, Name: c.Name}); err != nil {
		if errors.Is(err, store.ErrGroupAlreadyExists) {
			return fmt.Errorf("group %q already exists", c.Name)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	globals.reporter().Successf("Group %q created successfully", c.Name)
	return nil
}

type GroupsListCmd struct {
	Store StoreFlags `embed:""`
}

func (c *GroupsListCmd) Run(ctx context.Context, globals *Globals) error {
	stores, release, err := globals.openStores(ctx, c.Store)
	if err != nil {
		return err
	}
	defer release()

	groups, err := stores.Groups.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	out := globals.out()
	if len(groups) == 0 {
		fmt.Fprintln(out, "No groups found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tCREATED")
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.Name, g.ID, g.CreatedAt.Format(time.DateOnly))
	}
	return w.Flush()
}

type GroupsDeleteCmd struct {
	Name  string     `arg:"" help:"group name"`
	Store StoreFlags `embed:""`
}

func (c *GroupsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	stores, release, err := globals.openStores(ctx, c.Store)
	if err != nil {
		return err
	}
	defer release()

	group, err := stores.Groups.GetByName(ctx, c.Name)
	if err != nil {
		return groupError(c.Name, err)
	}

	if err := stores.Groups.Delete(ctx, group.ID); err != nil {
		return groupError(c.Name, err)
	}

	globals.reporter().Successf("Group %q deleted", c.Name)
	return nil
}

type GroupsAddMemberCmd struct {
	Name  string     `arg:"" help:"group name"`
	Login string     `arg:"" help:"account login value (email or phone, per AUTH_LOGIN_FIELD)"`
	Store StoreFlags `embed:""`
}

func (c *GroupsAddMemberCmd) Run(ctx context.Context, globals *Globals) error {
	stores, release, err := globals.openStores(ctx, c.Store)
	if err != nil {
		return err
	}
	defer release()

	account, err := lookupAccount(ctx, stores, globals.Settings.LoginField, c.Login)
	if err != nil {
		return err
	}

	group, err := stores.Groups.GetByName(ctx, c.Name)
	if err != nil {
		return groupError(c.Name, err)
	}

	if err := stores.Groups.AddMember(ctx, group.ID, account.ID); err != nil {
		return groupError(c.Name, err)
	}

	globals.reporter().Successf("Added %q to group %q", account.LoginValue(globals.Settings.LoginField), c.Name)
	return nil
}

type GroupsMembersCmd struct {
	Name  string     `arg:"" help:"group name"`
	Store StoreFlags `embed:""`
}

func (c *GroupsMembersCmd) Run(ctx context.Context, globals *Globals) error {
	stores, release, err := globals.openStores(ctx, c.Store)
	if err != nil {
		return err
	}
	defer release()

	group, err := stores.Groups.GetByName(ctx, c.Name)
	if err != nil {
		return groupError(c.Name, err)
	}

	ids, err := stores.Groups.Members(ctx, group.ID)
	if err != nil {
		return groupError(c.Name, err)
	}

	out := globals.out()
	if len(ids) == 0 {
		fmt.Fprintf(out, "Group %q has no members.\n", c.Name)
		return nil
	}

	field := globals.Settings.LoginField

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLOGIN\tNAME")
	for _, id := range ids {
		account, err := stores.Accounts.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get account %s: %w", id, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", account.ID, account.LoginValue(field), account.DisplayName(field))
	}
	return w.Flush()
}

func groupError(name string, err error) error {
	if errors.Is(err, store.ErrGroupNotFound) {
		return fmt.Errorf("group %q not found", name)
	}
	return fmt.Errorf("group %q: %w", name, err)
}
