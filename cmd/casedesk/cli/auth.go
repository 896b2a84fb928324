// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/casedesk/casedesk/lib/api"
	"github.com/casedesk/casedesk/lib/schema/support"
	"github.com/casedesk/casedesk/lib/session"
)

// authTimeout bounds the login and verification round trips.
const authTimeout = 15 * time.Second

// defaultServerURL is used when neither --server nor a saved session
// provides one.
const defaultServerURL = "http://localhost:8080"

// LoginCommand authenticates against a casedesk server and saves the
// session to the well-known path. Subsequent commands and the TUI
// load it transparently.
func LoginCommand() *Command {
	var serverURL string
	var passwordFile string

	return &Command{
		Name:    "login",
		Summary: "Authenticate and save a session",
		Description: `Log in to a casedesk server and save the session locally.

The session file is stored at ~/.config/casedesk/session.json (or
$CASEDESK_SESSION_FILE if set) with mode 0600, since it contains the
access token. After login every other command uses it transparently.`,
		Usage: "casedesk login <username> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.StringVar(&serverURL, "server", defaultServerURL, "casedesk server URL")
			flags.StringVar(&passwordFile, "password-file", "", "file containing the password (default: prompt)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: casedesk login <username>")
			}
			username := args[0]

			password, err := readPassword(passwordFile)
			if err != nil {
				return err
			}

			client, err := api.New(api.Config{BaseURL: serverURL})
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			auth, err := client.Login(ctx, support.Credentials{
				Username: username,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := session.Save(&session.Session{
				ServerURL: client.BaseURL(),
				Token:     auth.Token,
				User:      auth.User,
			}); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			fmt.Printf("Logged in as %s (%s). Session saved to %s\n",
				auth.User.Username, auth.User.Role, session.FilePath())
			return nil
		},
	}
}

// RegisterCommand creates a new account. Accounts need administrator
// approval before they can log in.
func RegisterCommand() *Command {
	var serverURL string
	var name string
	var email string

	return &Command{
		Name:    "register",
		Summary: "Register a new account",
		Description: `Register an account on a casedesk server.

New accounts wait for administrator approval; until then login is
rejected.`,
		Usage: "casedesk register <username> --email <address> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flags.StringVar(&serverURL, "server", defaultServerURL, "casedesk server URL")
			flags.StringVar(&name, "name", "", "display name")
			flags.StringVar(&email, "email", "", "contact email (required)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: casedesk register <username> --email <address>")
			}
			if email == "" {
				return fmt.Errorf("--email is required")
			}

			password, err := readPassword("")
			if err != nil {
				return err
			}

			client, err := api.New(api.Config{BaseURL: serverURL})
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			user, err := client.Register(ctx, support.Registration{
				Username: args[0],
				Password: password,
				Name:     name,
				Email:    email,
			})
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Printf("Registered %s. An administrator must approve the account before login.\n",
				user.Username)
			return nil
		},
	}
}

// LogoutCommand removes the saved session.
func LogoutCommand() *Command {
	return &Command{
		Name:    "logout",
		Summary: "Discard the saved session",
		Usage:   "casedesk logout",
		Run: func(args []string) error {
			if err := session.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

// WhoAmICommand verifies the saved session against the server.
func WhoAmICommand() *Command {
	return &Command{
		Name:    "whoami",
		Summary: "Show the logged-in account",
		Usage:   "casedesk whoami",
		Run: func(args []string) error {
			client, saved, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			user, err := client.WhoAmI(ctx)
			if err != nil {
				return describeAuthError(err)
			}

			fmt.Printf("%s (%s) on %s\n", user.Username, user.Role, saved.ServerURL)
			return nil
		},
	}
}

// authenticatedClient loads the saved session and returns a client
// carrying its token. Commands that talk to the server start here.
func authenticatedClient() (*api.Client, *session.Session, error) {
	saved, err := session.Load()
	if err != nil {
		return nil, nil, err
	}
	client, err := api.New(api.Config{BaseURL: saved.ServerURL})
	if err != nil {
		return nil, nil, err
	}
	return client.WithToken(saved.Token), saved, nil
}

// describeAuthError turns a 401 into an actionable message.
func describeAuthError(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return fmt.Errorf("session expired or revoked — run \"casedesk login\" again")
	}
	return err
}

// readPassword reads the password from the given file, or prompts on
// the terminal without echo when the path is empty or "-".
func readPassword(path string) (string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading password file: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	stdinFd := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFd) {
		return "", fmt.Errorf("stdin is not a terminal; use --password-file")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(stdinFd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(passwordBytes), nil
}
