// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// notificationsPane lists the user's notifications, unread first as
// the server orders them. Opening one marks it read and jumps to the
// case it references.
type notificationsPane struct {
	theme Theme

	items    []support.Notification
	selected int
	width    int
}

func newNotificationsPane(theme Theme) notificationsPane {
	return notificationsPane{theme: theme}
}

// SetData replaces the list, keeping the cursor on a valid row.
func (pane *notificationsPane) SetData(items []support.Notification) {
	pane.items = items
	if pane.selected >= len(items) {
		pane.selected = len(items) - 1
	}
	if pane.selected < 0 {
		pane.selected = 0
	}
}

func (pane *notificationsPane) SetWidth(width int) {
	pane.width = width
}

func (pane *notificationsPane) MoveUp() {
	if pane.selected > 0 {
		pane.selected--
	}
}

func (pane *notificationsPane) MoveDown() {
	if pane.selected < len(pane.items)-1 {
		pane.selected++
	}
}

func (pane *notificationsPane) Selected() (support.Notification, bool) {
	if len(pane.items) == 0 {
		return support.Notification{}, false
	}
	return pane.items[pane.selected], true
}

func (pane *notificationsPane) View() string {
	theme := pane.theme
	if len(pane.items) == 0 {
		return lipgloss.NewStyle().
			Foreground(theme.FaintText).
			Render("No notifications.")
	}

	messageWidth := pane.width - 22
	if messageWidth < 20 {
		messageWidth = 20
	}

	var lines []string
	for index, notification := range pane.items {
		bullet := "  "
		if !notification.Read {
			bullet = lipgloss.NewStyle().
				Foreground(theme.UnreadBullet).
				Render("● ")
		}
		stamp := lipgloss.NewStyle().Foreground(theme.FaintText).
			Render(formatTimestamp(notification.CreatedAt))

		messageStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
		if !notification.Read {
			messageStyle = lipgloss.NewStyle().
				Foreground(theme.NormalText).
				Bold(true)
		}
		message := messageStyle.Render(pad(notification.Message, messageWidth))

		row := bullet + message + " " + stamp
		if index == pane.selected {
			row = lipgloss.NewStyle().
				Background(theme.SelectionBackground).
				Render(row)
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}
