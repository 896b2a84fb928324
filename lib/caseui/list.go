// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// Column widths for the case list table. The title column fills the
// remaining space; all others are fixed.
const (
	columnWidthReference   = 11 // reference + space (e.g. "SUP-1043  ")
	columnWidthStatus      = 20 // dot + space + longest label ("waiting on client")
	columnWidthBadge       = 4  // "NEW " or blank, always reserved for alignment
	columnWidthResponsible = 13
	columnWidthInsurer     = 12
	minTitleWidth          = 10
)

// ListRenderer handles table-style rendering of case rows within a
// given width.
type ListRenderer struct {
	theme Theme
	width int
}

// NewListRenderer creates a ListRenderer for the given width.
func NewListRenderer(theme Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

// truncate cuts a string to the given display width, appending an
// ellipsis when anything was removed.
func truncate(text string, width int) string {
	if lipgloss.Width(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// pad right-pads a string with spaces to the given display width,
// truncating first if it is too long.
func pad(text string, width int) string {
	text = truncate(text, width)
	for lipgloss.Width(text) < width {
		text += " "
	}
	return text
}

func (renderer ListRenderer) titleWidth() int {
	width := renderer.width - columnWidthReference - columnWidthStatus -
		columnWidthBadge - columnWidthResponsible - columnWidthInsurer
	if width < minTitleWidth {
		width = minTitleWidth
	}
	return width
}

// RenderRow renders one case as a table row. The isNew flag adds the
// NEW badge for cases that arrived over the live channel within the
// marker window. Selected rows use a uniform highlight background.
//
// Row layout: reference | ● status | NEW | title | responsible | insurer
func (renderer ListRenderer) RenderRow(entry support.Case, selected, isNew bool) string {
	reference := pad(entry.Reference, columnWidthReference)
	status := pad("● "+statusLabel(entry.Status), columnWidthStatus)
	badge := "    "
	if isNew {
		badge = "NEW "
	}
	title := pad(entry.Title, renderer.titleWidth())
	responsible := pad(entry.Responsible, columnWidthResponsible)
	insurer := pad(entry.Insurer, columnWidthInsurer)

	if selected {
		row := reference + status + badge + title + responsible + insurer
		return lipgloss.NewStyle().
			Background(renderer.theme.SelectionBackground).
			Foreground(renderer.theme.SelectionForeground).
			Bold(isNew).
			Render(row)
	}

	theme := renderer.theme
	var row string
	row += lipgloss.NewStyle().Foreground(theme.FaintText).Render(reference)
	row += lipgloss.NewStyle().Foreground(theme.StatusColor(entry.Status)).Render(status)
	if isNew {
		row += lipgloss.NewStyle().Foreground(theme.NewBadge).Bold(true).Render(badge)
	} else {
		row += badge
	}
	row += lipgloss.NewStyle().Foreground(theme.NormalText).Render(title)
	row += lipgloss.NewStyle().Foreground(theme.FaintText).Render(responsible)
	row += lipgloss.NewStyle().Foreground(theme.FaintText).Render(insurer)
	return row
}

// RenderHeader renders the column header line.
func (renderer ListRenderer) RenderHeader() string {
	header := pad("REF", columnWidthReference) +
		pad("STATUS", columnWidthStatus) +
		"    " +
		pad("TITLE", renderer.titleWidth()) +
		pad("RESPONSIBLE", columnWidthResponsible) +
		pad("INSURER", columnWidthInsurer)
	return lipgloss.NewStyle().
		Foreground(renderer.theme.FaintText).
		Bold(true).
		Render(header)
}
