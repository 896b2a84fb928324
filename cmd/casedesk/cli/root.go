// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/casedesk/casedesk/lib/version"
)

// Root builds the full casedesk command tree. Running with no
// subcommand opens the interactive UI.
func Root() *Command {
	tui := TUICommand()
	return &Command{
		Name:    "casedesk",
		Summary: "Terminal client for the casedesk support tracker",
		Description: `casedesk is a terminal client for the casedesk support case
tracker: a live-updating case list, case detail with comments, a
dashboard, notifications, and account administration.

Running casedesk with no arguments opens the interactive UI.`,
		Subcommands: []*Command{
			tui,
			LoginCommand(),
			RegisterCommand(),
			LogoutCommand(),
			WhoAmICommand(),
			CaseCommand(),
			UsersCommand(),
			versionCommand(),
		},
		// Default action: the TUI.
		Run: tui.Run,
	}
}

func versionCommand() *Command {
	return &Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "casedesk version",
		Run: func(args []string) error {
			fmt.Println(version.Full())
			return nil
		},
	}
}
