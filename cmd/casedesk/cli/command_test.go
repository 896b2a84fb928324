// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "casedesk",
		Subcommands: []*Command{
			{
				Name: "login",
				Run: func(args []string) error {
					called = "login"
					return nil
				},
			},
			{
				Name: "whoami",
				Run: func(args []string) error {
					called = "whoami"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"whoami"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "whoami" {
		t.Errorf("dispatched to %q, want %q", called, "whoami")
	}
}

func TestExecuteNestedSubcommands(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "casedesk",
		Subcommands: []*Command{
			{
				Name: "case",
				Subcommands: []*Command{
					{
						Name: "show",
						Run: func(args []string) error {
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"case", "show", "42"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "42" {
		t.Errorf("leaf received args %v, want [42]", receivedArgs)
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	root := &Command{
		Name:        "casedesk",
		Subcommands: []*Command{{Name: "login", Run: func([]string) error { return nil }}},
	}

	err := root.Execute([]string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), `unknown command "bogus"`) {
		t.Errorf("expected unknown-command error, got %v", err)
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	var server string
	var positional []string

	command := &Command{
		Name: "login",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.StringVar(&server, "server", "", "server URL")
			return flags
		},
		Run: func(args []string) error {
			positional = args
			return nil
		},
	}

	if err := command.Execute([]string{"ana", "--server", "http://example.com"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if server != "http://example.com" {
		t.Errorf("flag not parsed, got %q", server)
	}
	if len(positional) != 1 || positional[0] != "ana" {
		t.Errorf("positional args %v, want [ana]", positional)
	}
}

func TestExecuteFlagErrorMentionsHelp(t *testing.T) {
	command := &Command{
		Name: "login",
		Flags: func() *pflag.FlagSet {
			return pflag.NewFlagSet("login", pflag.ContinueOnError)
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--nope"})
	if err == nil || !strings.Contains(err.Error(), "--help") {
		t.Errorf("flag error should point at --help, got %v", err)
	}
}

func TestPrintHelpListsSubcommands(t *testing.T) {
	root := Root()
	var buffer bytes.Buffer
	root.PrintHelp(&buffer)

	help := buffer.String()
	for _, name := range []string{"tui", "login", "case", "users", "version"} {
		if !strings.Contains(help, name) {
			t.Errorf("help missing %q:\n%s", name, help)
		}
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 3}
	coder, ok := any(err).(interface{ ExitCode() int })
	if !ok || coder.ExitCode() != 3 {
		t.Errorf("ExitError should expose its code, got %v", err)
	}
}
