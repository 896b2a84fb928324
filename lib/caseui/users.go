// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// usersPane is the administrator-only account management view:
// pending registrations awaiting approval on top, all accounts below.
// One selection cursor spans both sections.
type usersPane struct {
	theme Theme

	pending []support.User
	users   []support.User
	loaded  bool

	selected int
	width    int
}

func newUsersPane(theme Theme) usersPane {
	return usersPane{theme: theme}
}

func (pane *usersPane) SetData(pending, users []support.User) {
	pane.pending = pending
	pane.users = users
	pane.loaded = true
	if pane.selected >= pane.rowCount() {
		pane.selected = pane.rowCount() - 1
	}
	if pane.selected < 0 {
		pane.selected = 0
	}
}

func (pane *usersPane) SetWidth(width int) {
	pane.width = width
}

func (pane *usersPane) rowCount() int {
	return len(pane.pending) + len(pane.users)
}

func (pane *usersPane) MoveUp() {
	if pane.selected > 0 {
		pane.selected--
	}
}

func (pane *usersPane) MoveDown() {
	if pane.selected < pane.rowCount()-1 {
		pane.selected++
	}
}

// Selected returns the user under the cursor and whether it sits in
// the pending section.
func (pane *usersPane) Selected() (support.User, bool, bool) {
	if pane.rowCount() == 0 {
		return support.User{}, false, false
	}
	if pane.selected < len(pane.pending) {
		return pane.pending[pane.selected], true, true
	}
	return pane.users[pane.selected-len(pane.pending)], true, false
}

func (pane *usersPane) View() string {
	if !pane.loaded {
		return lipgloss.NewStyle().
			Foreground(pane.theme.FaintText).
			Render("Loading users…")
	}

	theme := pane.theme
	sectionTitle := lipgloss.NewStyle().Foreground(theme.TitleText).Bold(true)

	var lines []string
	lines = append(lines, sectionTitle.Render(
		fmt.Sprintf("Pending approval (%d)", len(pane.pending))))
	if len(pane.pending) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.FaintText).Render("  nobody waiting"))
	}
	for index, user := range pane.pending {
		lines = append(lines, pane.renderUserRow(user, index == pane.selected, true))
	}

	lines = append(lines, "", sectionTitle.Render(
		fmt.Sprintf("All accounts (%d)", len(pane.users))))
	for index, user := range pane.users {
		selected := len(pane.pending)+index == pane.selected
		lines = append(lines, pane.renderUserRow(user, selected, false))
	}

	return strings.Join(lines, "\n")
}

func (pane *usersPane) renderUserRow(user support.User, selected, isPending bool) string {
	theme := pane.theme

	role := string(user.Role)
	roleColor := theme.FaintText
	if user.IsAdmin() {
		roleColor = theme.AccentText
	}

	row := "  " + pad(user.Username, 16) + pad(user.Name, 24) + pad(user.Email, 28)
	if selected {
		suffix := pad(role, 14)
		if isPending {
			suffix += "a approves · x deletes"
		} else {
			suffix += "x deletes"
		}
		return lipgloss.NewStyle().
			Background(theme.SelectionBackground).
			Foreground(theme.SelectionForeground).
			Render(row + suffix)
	}

	return row + lipgloss.NewStyle().Foreground(roleColor).Render(pad(role, 14))
}
