// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseindex

import (
	"github.com/casedesk/casedesk/lib/schema/support"
)

// Outcome reports what ApplyEvent did with a live event, so the view
// knows whether to re-render, refetch, or do nothing.
type Outcome int

const (
	// OutcomeUnchanged means the event did not alter the index: a
	// duplicate new_case, or an event type the index does not merge.
	OutcomeUnchanged Outcome = iota

	// OutcomeInserted means a new case was prepended to the list.
	OutcomeInserted

	// OutcomeRefetch means the event signals a change the index
	// cannot apply locally (case_updated carries only the ID); the
	// caller should refetch the list.
	OutcomeRefetch
)

// Index is the ordered case list behind the list view, newest first.
// Not safe for concurrent use: the view model owns it and applies
// fetches and live events from its single update loop.
type Index struct {
	ordered []support.Case
	byID    map[int64]int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{byID: make(map[int64]int)}
}

// ReplaceAll swaps in a freshly fetched list, discarding every live
// merge since the previous fetch. The slice is copied; the caller may
// reuse it.
func (index *Index) ReplaceAll(cases []support.Case) {
	index.ordered = make([]support.Case, len(cases))
	copy(index.ordered, cases)
	index.reindex()
}

// Upsert replaces a case in place when the ID is already present, or
// prepends it when it is not.
func (index *Index) Upsert(entry support.Case) {
	if position, exists := index.byID[entry.ID]; exists {
		index.ordered[position] = entry
		return
	}
	index.prepend(entry)
}

// ApplyEvent merges one live event. A new_case prepends the carried
// case unless a case with that ID is already listed, in which case
// the event is a duplicate and nothing changes. A case_updated never
// touches the index — it only tells the caller to refetch.
func (index *Index) ApplyEvent(event support.LiveEvent) Outcome {
	switch event.Type {
	case support.EventTypeNewCase:
		if event.Case == nil {
			return OutcomeUnchanged
		}
		if _, exists := index.byID[event.Case.ID]; exists {
			return OutcomeUnchanged
		}
		index.prepend(*event.Case)
		return OutcomeInserted
	case support.EventTypeCaseUpdated:
		return OutcomeRefetch
	}
	return OutcomeUnchanged
}

// All returns the cases in display order. The returned slice is a
// copy; mutating it does not affect the index.
func (index *Index) All() []support.Case {
	cases := make([]support.Case, len(index.ordered))
	copy(cases, index.ordered)
	return cases
}

// Get returns the case with the given ID.
func (index *Index) Get(id int64) (support.Case, bool) {
	position, exists := index.byID[id]
	if !exists {
		return support.Case{}, false
	}
	return index.ordered[position], true
}

// Len returns the number of listed cases.
func (index *Index) Len() int {
	return len(index.ordered)
}

func (index *Index) prepend(entry support.Case) {
	index.ordered = append([]support.Case{entry}, index.ordered...)
	index.reindex()
}

func (index *Index) reindex() {
	index.byID = make(map[int64]int, len(index.ordered))
	for position := range index.ordered {
		index.byID[index.ordered[position].ID] = position
	}
}
