// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"strings"
	"testing"
)

func validCase() Case {
	return Case{
		ID:          7,
		Reference:   "SUP-1043",
		Title:       "Policy renewal stuck",
		Body:        "Renewal fails at the payment step.",
		Responsible: "ana",
		Status:      StatusInProgress,
		Insurer:     "AVLA",
		Category:    "billing",
		Keywords:    []string{"renewal", "payment"},
		OpenedAt:    "2026-03-01T09:00:00Z",
		UpdatedAt:   "2026-03-02T10:30:00Z",
	}
}

func TestCaseValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Case)
		wantErr string
	}{
		{"valid", func(c *Case) {}, ""},
		{"missing title", func(c *Case) { c.Title = "" }, "title is required"},
		{"missing description", func(c *Case) { c.Body = "" }, "description is required"},
		{"missing status", func(c *Case) { c.Status = "" }, "status is required"},
		{"unknown status", func(c *Case) { c.Status = "parked" }, `unknown status "parked"`},
		{"bad opened_at", func(c *Case) { c.OpenedAt = "yesterday" }, "opened_at must be RFC 3339"},
		{"bad closed_at", func(c *Case) { c.ClosedAt = "03/01/2026" }, "closed_at must be RFC 3339"},
		{"unassigned is fine", func(c *Case) { c.Responsible = "" }, ""},
		{"no server fields is fine", func(c *Case) {
			c.ID = 0
			c.Reference = ""
			c.OpenedAt = ""
			c.UpdatedAt = ""
		}, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := validCase()
			test.mutate(&c)
			err := c.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", test.wantErr)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("Validate() = %q, want error containing %q", err, test.wantErr)
			}
		})
	}
}

func TestStatusIsKnown(t *testing.T) {
	for _, status := range Statuses() {
		if !status.IsKnown() {
			t.Errorf("Statuses() entry %q not known", status)
		}
	}
	if Status("parked").IsKnown() {
		t.Error(`Status("parked").IsKnown() = true`)
	}
	if Status("").IsKnown() {
		t.Error(`Status("").IsKnown() = true`)
	}
}

func TestCommentValidate(t *testing.T) {
	comment := Comment{CaseID: 7, Body: "Checked with the insurer."}
	if err := comment.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	comment.Body = ""
	if err := comment.Validate(); err == nil {
		t.Fatal("Validate() with empty body should fail")
	}

	comment = Comment{Body: "orphan"}
	if err := comment.Validate(); err == nil {
		t.Fatal("Validate() with zero case_id should fail")
	}
}

func TestUnreadCount(t *testing.T) {
	notifications := []Notification{
		{ID: 1, Read: true},
		{ID: 2},
		{ID: 3},
	}
	if got := UnreadCount(notifications); got != 2 {
		t.Fatalf("UnreadCount = %d, want 2", got)
	}
	if got := UnreadCount(nil); got != 0 {
		t.Fatalf("UnreadCount(nil) = %d, want 0", got)
	}
}
