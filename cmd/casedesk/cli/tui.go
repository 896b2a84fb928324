// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/casedesk/casedesk/lib/caseui"
	"github.com/casedesk/casedesk/lib/clock"
	"github.com/casedesk/casedesk/lib/config"
	"github.com/casedesk/casedesk/lib/notify"
	"github.com/casedesk/casedesk/lib/push"
)

// TUICommand launches the interactive UI. This is also the default
// action when casedesk runs without a subcommand.
func TUICommand() *Command {
	var configPath string

	return &Command{
		Name:    "tui",
		Summary: "Open the interactive case UI",
		Description: `Open the full-screen terminal UI: the live case list, case
detail with comments, the dashboard, notifications, and (for
administrators) account management.

Requires a saved session — run "casedesk login" first.`,
		Usage: "casedesk tui [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("tui", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the YAML config file")
			return flags
		},
		Run: func(args []string) error {
			return runTUI(configPath)
		},
	}
}

func runTUI(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	client, saved, err := authenticatedClient()
	if err != nil {
		return err
	}
	defer client.CloseIdleConnections()
	if cfg.ServerURL != "" && cfg.ServerURL != saved.ServerURL {
		return fmt.Errorf("config server %s does not match the session's %s — log in again against the configured server",
			cfg.ServerURL, saved.ServerURL)
	}

	// Verify the session before taking over the terminal, so an
	// expired token produces a clean one-line message instead of a
	// broken full-screen UI.
	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	user, err := client.WhoAmI(ctx)
	cancel()
	if err != nil {
		return describeAuthError(err)
	}

	logger := NewCommandLogger()

	channel, err := push.Open(push.Config{
		URL:    client.WebSocketURL(),
		Token:  saved.Token,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer channel.Close()

	// The presenter signals state changes over this channel; the
	// model keeps a listen command pending on it. Capacity one with
	// a non-blocking send coalesces bursts.
	changes := make(chan struct{}, 1)
	alerter := notify.NewTerminalAlerter(
		termenv.NewOutput(os.Stdout),
		cfg.Sound,
		cfg.DesktopNotifications,
	)
	presenter := notify.Start(notify.Config{
		API:      client,
		Logger:   logger,
		Interval: cfg.NotificationPoll.Std(),
		Alerter:  alerter,
		OnChange: func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		},
	})
	defer presenter.Close()

	model := caseui.NewModel(caseui.Config{
		Client:           client,
		User:             *user,
		Push:             channel,
		Notifier:         presenter,
		NotifyChanges:    changes,
		Clock:            clock.Real(),
		Logger:           logger,
		DashboardRefresh: cfg.DashboardRefresh.Std(),
	})

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	_, err = program.Run()
	return err
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
