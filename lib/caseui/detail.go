// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// detailPane shows a single case: metadata header, markdown body, and
// the comment thread, with a composer for new comments at the bottom.
type detailPane struct {
	theme Theme

	viewport viewport.Model
	composer textarea.Model

	entry    support.Case
	comments []support.Comment
	isAdmin  bool

	loaded   bool
	notFound bool

	// missingID is the case the server no longer has, shown in the
	// not-found state.
	missingID int64

	// composeInternal marks the next comment staff-only. Only
	// administrators can set it.
	composeInternal bool

	width  int
	height int
}

func newDetailPane(theme Theme) detailPane {
	composer := textarea.New()
	composer.Placeholder = "Write a comment (markdown supported)…"
	composer.CharLimit = 0
	composer.SetHeight(4)
	composer.ShowLineNumbers = false

	return detailPane{
		theme:    theme,
		viewport: viewport.New(0, 0),
		composer: composer,
	}
}

// composerHeight is the height of the comment composer plus its hint
// line while composing.
const composerHeight = 6

func (pane *detailPane) SetSize(width, height int, composing bool) {
	pane.width = width
	pane.height = height
	viewportHeight := height
	if composing {
		viewportHeight -= composerHeight
	}
	if viewportHeight < 3 {
		viewportHeight = 3
	}
	pane.viewport.Width = width
	pane.viewport.Height = viewportHeight
	pane.composer.SetWidth(width - 2)
	pane.refreshContent()
}

// SetCase replaces the displayed case and rebuilds the rendered
// content. Internal comments are dropped for non-administrators.
func (pane *detailPane) SetCase(entry support.Case, comments []support.Comment, isAdmin bool) {
	pane.entry = entry
	pane.isAdmin = isAdmin
	pane.comments = pane.comments[:0]
	for _, comment := range comments {
		if comment.Internal && !isAdmin {
			continue
		}
		pane.comments = append(pane.comments, comment)
	}
	pane.loaded = true
	pane.notFound = false
	pane.refreshContent()
}

// SetNotFound switches the pane to the deleted-case state. The list
// remains reachable via the back binding.
func (pane *detailPane) SetNotFound(id int64) {
	pane.loaded = false
	pane.notFound = true
	pane.missingID = id
	pane.refreshContent()
}

func (pane *detailPane) Reset() {
	pane.loaded = false
	pane.notFound = false
	pane.composer.Reset()
	pane.composeInternal = false
	pane.viewport.GotoTop()
}

func (pane *detailPane) refreshContent() {
	if pane.width == 0 {
		return
	}
	switch {
	case pane.notFound:
		pane.viewport.SetContent(pane.renderNotFound())
	case pane.loaded:
		pane.viewport.SetContent(pane.renderCase())
	default:
		pane.viewport.SetContent(lipgloss.NewStyle().
			Foreground(pane.theme.FaintText).
			Render("Loading…"))
	}
}

func (pane *detailPane) renderNotFound() string {
	style := lipgloss.NewStyle().Foreground(pane.theme.ToastError)
	return style.Render(fmt.Sprintf("Case %d no longer exists on the server.", pane.missingID)) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(pane.theme.FaintText).
			Render("It may have been deleted. Press esc to return to the list.")
}

func (pane *detailPane) renderCase() string {
	theme := pane.theme
	entry := pane.entry
	var sections []string

	title := lipgloss.NewStyle().
		Foreground(theme.TitleText).
		Bold(true).
		Render(entry.Reference + "  " + entry.Title)
	sections = append(sections, title)

	meta := []string{
		fmt.Sprintf("status: %s", lipgloss.NewStyle().
			Foreground(theme.StatusColor(entry.Status)).
			Render(statusLabel(entry.Status))),
	}
	if entry.Responsible != "" {
		meta = append(meta, "responsible: "+entry.Responsible)
	}
	if entry.Insurer != "" {
		meta = append(meta, "insurer: "+entry.Insurer)
	}
	if entry.Category != "" {
		meta = append(meta, "category: "+entry.Category)
	}
	if entry.OpenedAt != "" {
		meta = append(meta, "opened: "+formatTimestamp(entry.OpenedAt))
	}
	if entry.ClosedAt != "" {
		meta = append(meta, "closed: "+formatTimestamp(entry.ClosedAt))
	}
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Render(strings.Join(meta, "  ·  ")))

	if len(entry.Keywords) > 0 {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.AccentText).
			Render("["+strings.Join(entry.Keywords, "] [")+"]"))
	}

	if entry.Body != "" {
		sections = append(sections, "", renderMarkdown(entry.Body, pane.width-2, theme))
	}

	sections = append(sections, "", pane.renderComments())
	return strings.Join(sections, "\n")
}

func (pane *detailPane) renderComments() string {
	theme := pane.theme
	divider := lipgloss.NewStyle().Foreground(theme.Border).
		Render(strings.Repeat("─", maxInt(pane.width-2, 10)))

	header := fmt.Sprintf("Comments (%d)", len(pane.comments))
	var sections []string
	sections = append(sections, divider, lipgloss.NewStyle().
		Foreground(theme.TitleText).Bold(true).Render(header))

	if len(pane.comments) == 0 {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.FaintText).Render("No comments yet."))
		return strings.Join(sections, "\n")
	}

	for _, comment := range pane.comments {
		byline := lipgloss.NewStyle().Foreground(theme.AccentText).Render(comment.Author) +
			lipgloss.NewStyle().Foreground(theme.FaintText).
				Render("  "+formatTimestamp(comment.CreatedAt))
		if comment.Internal {
			byline += "  " + lipgloss.NewStyle().
				Foreground(theme.NewBadge).
				Render("[internal]")
		}
		sections = append(sections, "", byline, renderMarkdown(comment.Body, pane.width-2, theme))
	}
	return strings.Join(sections, "\n")
}

// ViewComposer renders the comment composer with its submit hint.
func (pane *detailPane) ViewComposer() string {
	hint := "ctrl+s send · esc cancel"
	if pane.isAdmin {
		tag := "public"
		if pane.composeInternal {
			tag = "internal"
		}
		hint += " · ctrl+t visibility: " + tag
	}
	return pane.composer.View() + "\n" +
		lipgloss.NewStyle().Foreground(pane.theme.FaintText).Render(hint)
}

func (pane *detailPane) View() string {
	return pane.viewport.View()
}

// formatTimestamp renders an RFC 3339 stamp as local "2006-01-02
// 15:04". Unparseable input is shown as-is.
func formatTimestamp(stamp string) string {
	parsed, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return stamp
	}
	return parsed.Local().Format("2006-01-02 15:04")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
