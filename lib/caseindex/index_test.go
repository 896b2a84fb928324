// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseindex

import (
	"testing"

	"github.com/casedesk/casedesk/lib/schema/support"
)

func makeCase(id int64, title string) support.Case {
	return support.Case{
		ID:        id,
		Reference: "SUP-1000",
		Title:     title,
		Status:    support.StatusPending,
	}
}

func listIDs(cases []support.Case) []int64 {
	ids := make([]int64, len(cases))
	for i := range cases {
		ids[i] = cases[i].ID
	}
	return ids
}

func sameIDs(got []support.Case, want ...int64) bool {
	ids := listIDs(got)
	if len(ids) != len(want) {
		return false
	}
	for i := range ids {
		if ids[i] != want[i] {
			return false
		}
	}
	return true
}

func TestReplaceAllDiscardsMergedState(t *testing.T) {
	index := NewIndex()
	index.ReplaceAll([]support.Case{makeCase(2, "second"), makeCase(1, "first")})

	// Live merge adds case 3.
	outcome := index.ApplyEvent(support.LiveEvent{
		Type: support.EventTypeNewCase,
		Case: &support.Case{ID: 3, Title: "third", Status: support.StatusPending},
	})
	if outcome != OutcomeInserted {
		t.Fatalf("ApplyEvent = %v, want OutcomeInserted", outcome)
	}
	if !sameIDs(index.All(), 3, 2, 1) {
		t.Fatalf("after merge: %v, want [3 2 1]", listIDs(index.All()))
	}

	// A full fetch that does not include case 3 wins over the merge.
	index.ReplaceAll([]support.Case{makeCase(2, "second"), makeCase(1, "first")})
	if !sameIDs(index.All(), 2, 1) {
		t.Fatalf("after refetch: %v, want [2 1]", listIDs(index.All()))
	}
	if _, exists := index.Get(3); exists {
		t.Error("case 3 survived a full fetch that omitted it")
	}
}

func TestApplyEventDuplicateNewCaseIsNoOp(t *testing.T) {
	index := NewIndex()
	index.ReplaceAll([]support.Case{makeCase(1, "first")})

	event := support.LiveEvent{
		Type: support.EventTypeNewCase,
		Case: &support.Case{ID: 5, Title: "fresh", Status: support.StatusPending},
	}
	if outcome := index.ApplyEvent(event); outcome != OutcomeInserted {
		t.Fatalf("first ApplyEvent = %v, want OutcomeInserted", outcome)
	}
	if outcome := index.ApplyEvent(event); outcome != OutcomeUnchanged {
		t.Fatalf("duplicate ApplyEvent = %v, want OutcomeUnchanged", outcome)
	}
	if !sameIDs(index.All(), 5, 1) {
		t.Fatalf("list = %v, want [5 1] with no duplicate", listIDs(index.All()))
	}
}

func TestApplyEventNewCaseAlreadyFetched(t *testing.T) {
	// The fetch can win the race and list the case before its event
	// arrives. The late event must not duplicate it.
	index := NewIndex()
	index.ReplaceAll([]support.Case{makeCase(5, "already here"), makeCase(1, "old")})

	outcome := index.ApplyEvent(support.LiveEvent{
		Type: support.EventTypeNewCase,
		Case: &support.Case{ID: 5, Title: "already here", Status: support.StatusPending},
	})
	if outcome != OutcomeUnchanged {
		t.Fatalf("ApplyEvent = %v, want OutcomeUnchanged", outcome)
	}
	if index.Len() != 2 {
		t.Fatalf("Len = %d, want 2", index.Len())
	}
}

func TestApplyEventCaseUpdatedSignalsRefetch(t *testing.T) {
	index := NewIndex()
	index.ReplaceAll([]support.Case{makeCase(1, "first")})

	outcome := index.ApplyEvent(support.LiveEvent{
		Type:   support.EventTypeCaseUpdated,
		CaseID: 1,
	})
	if outcome != OutcomeRefetch {
		t.Fatalf("ApplyEvent = %v, want OutcomeRefetch", outcome)
	}
	// The index itself is untouched; the refetch brings the change.
	if entry, _ := index.Get(1); entry.Title != "first" {
		t.Errorf("Title = %q, want unchanged", entry.Title)
	}
}

func TestUpsert(t *testing.T) {
	index := NewIndex()
	index.ReplaceAll([]support.Case{makeCase(2, "second"), makeCase(1, "first")})

	// Existing ID: replaced in place, order kept.
	updated := makeCase(1, "first, renamed")
	updated.Status = support.StatusDone
	index.Upsert(updated)
	if !sameIDs(index.All(), 2, 1) {
		t.Fatalf("order changed: %v", listIDs(index.All()))
	}
	if entry, _ := index.Get(1); entry.Status != support.StatusDone {
		t.Errorf("Status = %q, want done", entry.Status)
	}

	// New ID: prepended.
	index.Upsert(makeCase(9, "ninth"))
	if !sameIDs(index.All(), 9, 2, 1) {
		t.Fatalf("list = %v, want [9 2 1]", listIDs(index.All()))
	}
}

func TestAllReturnsCopy(t *testing.T) {
	index := NewIndex()
	index.ReplaceAll([]support.Case{makeCase(1, "first")})

	cases := index.All()
	cases[0].Title = "mutated"

	if entry, _ := index.Get(1); entry.Title != "first" {
		t.Errorf("mutating All() leaked into the index: %q", entry.Title)
	}
}

func TestEmptyIndex(t *testing.T) {
	index := NewIndex()
	if index.Len() != 0 {
		t.Errorf("Len = %d, want 0", index.Len())
	}
	if _, exists := index.Get(1); exists {
		t.Error("Get on empty index reported a case")
	}
	if outcome := index.ApplyEvent(support.LiveEvent{Type: "something_else"}); outcome != OutcomeUnchanged {
		t.Errorf("unmergeable event outcome = %v, want OutcomeUnchanged", outcome)
	}
}
