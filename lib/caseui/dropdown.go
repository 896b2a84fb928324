// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// statusDropdown is the overlay opened by the set-status binding. It
// offers every status except the case's current one; selecting an
// entry sends the update to the server.
type statusDropdown struct {
	caseID   int64
	options  []support.Status
	selected int
}

// newStatusDropdown builds the overlay for the given case. The
// current status is omitted from the options since re-selecting it
// would be a no-op update.
func newStatusDropdown(caseID int64, current support.Status) *statusDropdown {
	var options []support.Status
	for _, status := range support.Statuses() {
		if status == current {
			continue
		}
		options = append(options, status)
	}
	return &statusDropdown{caseID: caseID, options: options}
}

func (dropdown *statusDropdown) MoveUp() {
	if dropdown.selected > 0 {
		dropdown.selected--
	}
}

func (dropdown *statusDropdown) MoveDown() {
	if dropdown.selected < len(dropdown.options)-1 {
		dropdown.selected++
	}
}

// Selection returns the highlighted status.
func (dropdown *statusDropdown) Selection() support.Status {
	return dropdown.options[dropdown.selected]
}

// Render draws the overlay as a bordered box.
func (dropdown *statusDropdown) Render(theme Theme) string {
	var rows []string
	for index, status := range dropdown.options {
		label := statusLabel(status)
		style := lipgloss.NewStyle().Foreground(theme.StatusColor(status))
		if index == dropdown.selected {
			style = style.
				Background(theme.SelectionBackground).
				Bold(true)
			label = "▸ " + label
		} else {
			label = "  " + label
		}
		rows = append(rows, style.Render(label))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	title := lipgloss.NewStyle().
		Foreground(theme.TitleText).
		Bold(true).
		Render("Set status")
	return box.Render(title + "\n" + strings.Join(rows, "\n"))
}
