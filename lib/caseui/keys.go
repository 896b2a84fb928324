// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the case UI. Bindings carry
// help text so the footer can render a hint line per focus region.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	TabCases         key.Binding
	TabDashboard     key.Binding
	TabNotifications key.Binding
	TabUsers         key.Binding
	NextTab          key.Binding

	Filter key.Binding
	Escape key.Binding
	Open   key.Binding
	Back   key.Binding

	SetStatus key.Binding
	Comment   key.Binding
	Refresh   key.Binding

	MarkAllRead key.Binding
	Approve     key.Binding
	Delete      key.Binding

	Quit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),

		TabCases: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "cases"),
		),
		TabDashboard: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "dashboard"),
		),
		TabNotifications: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "notifications"),
		),
		TabUsers: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "users"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),

		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back/clear"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back to list"),
		),

		SetStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "set status"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		MarkAllRead: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "mark all read"),
		),
		Approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
