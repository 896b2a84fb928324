// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// dashboardPane renders the aggregate stats view: headline counters,
// the per-insurer breakdown, and the recent open/close history.
type dashboardPane struct {
	theme Theme

	stats  *support.DashboardStats
	charts []support.ChartPoint
	loaded bool

	width int
}

func newDashboardPane(theme Theme) dashboardPane {
	return dashboardPane{theme: theme}
}

func (pane *dashboardPane) SetData(stats *support.DashboardStats, charts []support.ChartPoint) {
	pane.stats = stats
	pane.charts = charts
	pane.loaded = true
}

func (pane *dashboardPane) SetWidth(width int) {
	pane.width = width
}

// maxHistoryDays caps the history chart to the most recent days that
// fit a readable row each.
const maxHistoryDays = 14

func (pane *dashboardPane) View() string {
	if !pane.loaded {
		return lipgloss.NewStyle().
			Foreground(pane.theme.FaintText).
			Render("Loading dashboard…")
	}

	sections := []string{
		pane.renderCounters(),
		pane.renderInsurers(),
		pane.renderHistory(),
	}
	return strings.Join(sections, "\n\n")
}

// renderCounters draws the headline numbers as a row of boxes.
func (pane *dashboardPane) renderCounters() string {
	theme := pane.theme
	stats := pane.stats

	box := func(label string, value string, color lipgloss.Color) string {
		inner := lipgloss.NewStyle().Foreground(color).Bold(true).Render(value) +
			"\n" +
			lipgloss.NewStyle().Foreground(theme.FaintText).Render(label)
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2).
			Render(inner)
	}

	boxes := []string{
		box("total", fmt.Sprintf("%d", stats.Total), theme.NormalText),
		box("completed", fmt.Sprintf("%d", stats.Completed), theme.StatusDone),
		box("pending", fmt.Sprintf("%d", stats.Pending), theme.StatusPending),
		box("waiting on client", fmt.Sprintf("%d", stats.WaitingOnClient), theme.StatusWaitingOnClient),
		box("completion", fmt.Sprintf("%.0f%%", stats.CompletionPercent), theme.AccentText),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// renderInsurers draws a horizontal bar per insurer, scaled to the
// largest count.
func (pane *dashboardPane) renderInsurers() string {
	theme := pane.theme
	counts := pane.stats.ByInsurer
	title := lipgloss.NewStyle().Foreground(theme.TitleText).Bold(true).
		Render("Cases by insurer")
	if len(counts) == 0 {
		return title + "\n" + lipgloss.NewStyle().
			Foreground(theme.FaintText).Render("  no cases")
	}

	labelWidth := 0
	peak := 0
	for _, row := range counts {
		if len(row.Insurer) > labelWidth {
			labelWidth = len(row.Insurer)
		}
		if row.Count > peak {
			peak = row.Count
		}
	}
	barSpace := pane.width - labelWidth - 10
	if barSpace < 10 {
		barSpace = 10
	}

	lines := []string{title}
	for _, row := range counts {
		barWidth := 1
		if peak > 0 {
			barWidth = row.Count * barSpace / peak
			if barWidth < 1 {
				barWidth = 1
			}
		}
		lines = append(lines, fmt.Sprintf("  %-*s %s %d",
			labelWidth,
			row.Insurer,
			lipgloss.NewStyle().Foreground(theme.ChartBar).
				Render(strings.Repeat("█", barWidth)),
			row.Count,
		))
	}
	return strings.Join(lines, "\n")
}

// renderHistory draws the recent daily opened/completed counts as
// paired bars, newest day last.
func (pane *dashboardPane) renderHistory() string {
	theme := pane.theme
	title := lipgloss.NewStyle().Foreground(theme.TitleText).Bold(true).
		Render("Recent activity")

	points := pane.charts
	if len(points) == 0 {
		return title + "\n" + lipgloss.NewStyle().
			Foreground(theme.FaintText).Render("  no activity")
	}
	if len(points) > maxHistoryDays {
		points = points[len(points)-maxHistoryDays:]
	}

	peak := 1
	for _, point := range points {
		if point.Opened > peak {
			peak = point.Opened
		}
		if point.Completed > peak {
			peak = point.Completed
		}
	}
	barSpace := pane.width - 26
	if barSpace < 10 {
		barSpace = 10
	}

	bar := func(value int, color lipgloss.Color) string {
		width := value * barSpace / peak
		if value > 0 && width < 1 {
			width = 1
		}
		return lipgloss.NewStyle().Foreground(color).
			Render(strings.Repeat("▆", width))
	}

	lines := []string{title}
	for _, point := range points {
		lines = append(lines,
			fmt.Sprintf("  %s  opened %2d %s", point.Date, point.Opened,
				bar(point.Opened, theme.ChartBar)),
			fmt.Sprintf("              done %2d %s", point.Completed,
				bar(point.Completed, theme.ChartBarAlt)),
		)
	}

	legend := lipgloss.NewStyle().Foreground(theme.FaintText).
		Render("  opened " + lipgloss.NewStyle().Foreground(theme.ChartBar).Render("▆") +
			"  completed " + lipgloss.NewStyle().Foreground(theme.ChartBarAlt).Render("▆"))
	lines = append(lines, "", legend)
	return strings.Join(lines, "\n")
}
