// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseindex

import (
	"strings"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// Filter narrows the case list client-side. Every set criterion must
// hold for a case to pass — the criteria compose with AND. The zero
// Filter passes everything. Filtering never touches the network; it
// recomputes synchronously over the index.
type Filter struct {
	// Search is matched case-insensitively as a substring of the
	// title, the external reference, and the responsible. Any one
	// field containing it satisfies the criterion.
	Search string

	// Status keeps only cases in this lifecycle state. Empty means
	// any status.
	Status support.Status

	// Responsible keeps only cases assigned to this username,
	// compared case-insensitively. Empty means any assignee.
	Responsible string

	// Insurer keeps only cases for this insurer, compared
	// case-insensitively. Empty means any insurer.
	Insurer string
}

// IsZero reports whether no criterion is set.
func (filter Filter) IsZero() bool {
	return filter == Filter{}
}

// Matches reports whether the case passes every set criterion.
func (filter Filter) Matches(entry support.Case) bool {
	if filter.Status != "" && entry.Status != filter.Status {
		return false
	}
	if filter.Responsible != "" && !strings.EqualFold(entry.Responsible, filter.Responsible) {
		return false
	}
	if filter.Insurer != "" && !strings.EqualFold(entry.Insurer, filter.Insurer) {
		return false
	}
	if filter.Search != "" {
		query := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(entry.Title), query) &&
			!strings.Contains(strings.ToLower(entry.Reference), query) &&
			!strings.Contains(strings.ToLower(entry.Responsible), query) {
			return false
		}
	}
	return true
}

// Apply returns the cases that pass, preserving order.
func (filter Filter) Apply(cases []support.Case) []support.Case {
	if filter.IsZero() {
		return cases
	}
	var result []support.Case
	for _, entry := range cases {
		if filter.Matches(entry) {
			result = append(result, entry)
		}
	}
	return result
}
