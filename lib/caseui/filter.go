// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/casedesk/casedesk/lib/caseindex"
	"github.com/casedesk/casedesk/lib/schema/support"
)

// ParseFilter converts a filter bar query into the structured filter
// applied to the case index. Tokens of the form "status:done",
// "resp:ana", and "ins:avla" set the corresponding criterion; all
// remaining tokens join into the free-text search. A later qualifier
// of the same kind replaces an earlier one.
//
// Status values accept both the wire form ("in_progress") and a
// hyphenated spelling ("in-progress"). An unrecognized status value
// is treated as free text so the user sees why nothing matches.
func ParseFilter(query string) caseindex.Filter {
	var filter caseindex.Filter
	var searchTerms []string

	for _, token := range strings.Fields(query) {
		qualifier, value, found := strings.Cut(token, ":")
		if !found || value == "" {
			searchTerms = append(searchTerms, token)
			continue
		}
		switch strings.ToLower(qualifier) {
		case "status", "st":
			status := parseStatusValue(value)
			if status == "" {
				searchTerms = append(searchTerms, token)
				continue
			}
			filter.Status = status
		case "resp", "responsible":
			filter.Responsible = value
		case "ins", "insurer":
			filter.Insurer = value
		default:
			searchTerms = append(searchTerms, token)
		}
	}

	filter.Search = strings.Join(searchTerms, " ")
	return filter
}

func parseStatusValue(value string) support.Status {
	normalized := strings.ToLower(strings.ReplaceAll(value, "-", "_"))
	candidate := support.Status(normalized)
	if candidate.IsKnown() {
		return candidate
	}
	return ""
}

// newFilterInput builds the filter bar's text input.
func newFilterInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "search  status:done  resp:name  ins:name"
	input.CharLimit = 128
	return input
}

// renderFilterBar renders the filter line shown in place of the tab
// bar while the filter has focus, or the compact active-filter
// summary when a filter is applied but focus has returned to the
// list.
func (model Model) renderFilterBar() string {
	if model.focusRegion == FocusFilter {
		return model.filterInput.View()
	}
	summary := describeFilter(model.filter)
	if summary == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.AccentText).
		Render("filter: " + summary + "  (esc clears)")
}

// describeFilter renders a filter back into the qualifier syntax for
// the active-filter summary line.
func describeFilter(filter caseindex.Filter) string {
	var parts []string
	if filter.Search != "" {
		parts = append(parts, filter.Search)
	}
	if filter.Status != "" {
		parts = append(parts, "status:"+string(filter.Status))
	}
	if filter.Responsible != "" {
		parts = append(parts, "resp:"+filter.Responsible)
	}
	if filter.Insurer != "" {
		parts = append(parts, "ins:"+filter.Insurer)
	}
	return strings.Join(parts, " ")
}
