// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/casedesk/casedesk/lib/schema/support"
	"github.com/spf13/pflag"
)

const usersTimeout = 15 * time.Second

// UsersCommand groups the administrator account operations.
func UsersCommand() *Command {
	return &Command{
		Name:    "users",
		Summary: "Manage accounts (administrators)",
		Subcommands: []*Command{
			usersListCommand(),
			usersPendingCommand(),
			usersApproveCommand(),
			usersEditCommand(),
			usersDeleteCommand(),
		},
	}
}

func printUserTable(users []support.User) error {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tEMAIL\tROLE\tAPPROVED")
	for _, user := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%t\n",
			user.ID, user.Username, user.Name, user.Email, user.Role, user.Approved)
	}
	return tw.Flush()
}

func usersListCommand() *Command {
	return &Command{
		Name:    "list",
		Summary: "List all accounts",
		Usage:   "casedesk users list",
		Run: func(args []string) error {
			client, _, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), usersTimeout)
			defer cancel()
			users, err := client.ListUsers(ctx)
			if err != nil {
				return describeAuthError(err)
			}
			return printUserTable(users)
		},
	}
}

func usersPendingCommand() *Command {
	return &Command{
		Name:    "pending",
		Summary: "List accounts awaiting approval",
		Usage:   "casedesk users pending",
		Run: func(args []string) error {
			client, _, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), usersTimeout)
			defer cancel()
			pending, err := client.ListPendingUsers(ctx)
			if err != nil {
				return describeAuthError(err)
			}
			if len(pending) == 0 {
				fmt.Println("Nobody is waiting for approval.")
				return nil
			}
			return printUserTable(pending)
		},
	}
}

func usersApproveCommand() *Command {
	return &Command{
		Name:    "approve",
		Summary: "Approve a pending account",
		Usage:   "casedesk users approve <id>",
		Run: func(args []string) error {
			id, err := parseUserID(args)
			if err != nil {
				return err
			}
			client, _, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), usersTimeout)
			defer cancel()
			if err := client.ApproveUser(ctx, id); err != nil {
				return describeAuthError(err)
			}
			fmt.Printf("Approved user %d\n", id)
			return nil
		},
	}
}

func usersEditCommand() *Command {
	var (
		name  string
		email string
		role  string
	)

	return &Command{
		Name:    "edit",
		Summary: "Change an account's profile or role",
		Usage:   "casedesk users edit <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("edit", pflag.ContinueOnError)
			flags.StringVar(&name, "name", "", "display name")
			flags.StringVar(&email, "email", "", "email address")
			flags.StringVar(&role, "role", "", "account role (client or administrator)")
			return flags
		},
		Run: func(args []string) error {
			id, err := parseUserID(args)
			if err != nil {
				return err
			}

			client, _, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), usersTimeout)
			defer cancel()

			// The update endpoint replaces the profile wholesale, so
			// start from the current record and overlay the set flags.
			users, err := client.ListUsers(ctx)
			if err != nil {
				return describeAuthError(err)
			}
			var current *support.User
			for i := range users {
				if users[i].ID == id {
					current = &users[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("no user with id %d", id)
			}

			changed := false
			if name != "" {
				current.Name = name
				changed = true
			}
			if email != "" {
				current.Email = email
				changed = true
			}
			if role != "" {
				value := support.Role(role)
				if !value.IsKnown() {
					return fmt.Errorf("unknown role %q (client or administrator)", role)
				}
				current.Role = value
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to change — pass at least one flag")
			}

			updated, err := client.UpdateUser(ctx, id, *current)
			if err != nil {
				return describeAuthError(err)
			}
			fmt.Printf("Updated user %d (%s, %s)\n", updated.ID, updated.Name, updated.Role)
			return nil
		},
	}
}

func usersDeleteCommand() *Command {
	return &Command{
		Name:    "delete",
		Summary: "Delete an account",
		Usage:   "casedesk users delete <id>",
		Run: func(args []string) error {
			id, err := parseUserID(args)
			if err != nil {
				return err
			}
			client, saved, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			if id == saved.User.ID {
				return fmt.Errorf("refusing to delete the logged-in account")
			}

			ctx, cancel := context.WithTimeout(context.Background(), usersTimeout)
			defer cancel()
			if err := client.DeleteUser(ctx, id); err != nil {
				return describeAuthError(err)
			}
			fmt.Printf("Deleted user %d\n", id)
			return nil
		},
	}
}

func parseUserID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("exactly one user id expected")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", args[0])
	}
	return id, nil
}
