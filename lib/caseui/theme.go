// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// Theme collects every color the case UI renders with. All values are
// ANSI-256 palette entries so the UI degrades sensibly on terminals
// without truecolor support.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	TitleText  lipgloss.Color
	AccentText lipgloss.Color

	SelectionBackground lipgloss.Color
	SelectionForeground lipgloss.Color

	// NewBadge is the foreground for the "NEW" marker on cases that
	// arrived over the live channel and have not yet aged out.
	NewBadge lipgloss.Color

	StatusPending         lipgloss.Color
	StatusInProgress      lipgloss.Color
	StatusWaitingOnClient lipgloss.Color
	StatusDone            lipgloss.Color

	Connected    lipgloss.Color
	Disconnected lipgloss.Color

	ToastInfo  lipgloss.Color
	ToastError lipgloss.Color

	Border       lipgloss.Color
	UnreadBullet lipgloss.Color
	ChartBar     lipgloss.Color
	ChartBarAlt  lipgloss.Color
}

// DefaultTheme returns the standard casedesk palette.
func DefaultTheme() Theme {
	return Theme{
		NormalText: lipgloss.Color("252"),
		FaintText:  lipgloss.Color("243"),
		TitleText:  lipgloss.Color("231"),
		AccentText: lipgloss.Color("75"),

		SelectionBackground: lipgloss.Color("237"),
		SelectionForeground: lipgloss.Color("231"),

		NewBadge: lipgloss.Color("214"),

		StatusPending:         lipgloss.Color("178"),
		StatusInProgress:      lipgloss.Color("75"),
		StatusWaitingOnClient: lipgloss.Color("170"),
		StatusDone:            lipgloss.Color("77"),

		Connected:    lipgloss.Color("77"),
		Disconnected: lipgloss.Color("203"),

		ToastInfo:  lipgloss.Color("77"),
		ToastError: lipgloss.Color("203"),

		Border:       lipgloss.Color("238"),
		UnreadBullet: lipgloss.Color("214"),
		ChartBar:     lipgloss.Color("75"),
		ChartBarAlt:  lipgloss.Color("77"),
	}
}

// StatusColor maps a case status to its display color. Unknown
// statuses (from a newer server) render in the faint text color.
func (theme Theme) StatusColor(status support.Status) lipgloss.Color {
	switch status {
	case support.StatusPending:
		return theme.StatusPending
	case support.StatusInProgress:
		return theme.StatusInProgress
	case support.StatusWaitingOnClient:
		return theme.StatusWaitingOnClient
	case support.StatusDone:
		return theme.StatusDone
	default:
		return theme.FaintText
	}
}

// statusLabel is the short human label shown in list rows and the
// detail header.
func statusLabel(status support.Status) string {
	switch status {
	case support.StatusPending:
		return "pending"
	case support.StatusInProgress:
		return "in progress"
	case support.StatusWaitingOnClient:
		return "waiting on client"
	case support.StatusDone:
		return "done"
	default:
		return string(status)
	}
}
