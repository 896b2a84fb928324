// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"errors"
	"fmt"
	"time"
)

// Status is the lifecycle state of a case. Values are self-describing
// strings that serialize directly to JSON.
type Status string

const (
	// StatusPending means the case has been opened but nobody has
	// started working on it.
	StatusPending Status = "pending"

	// StatusInProgress means a responsible is actively working the
	// case.
	StatusInProgress Status = "in_progress"

	// StatusWaitingOnClient means progress is blocked on information
	// or action from the client who opened the case.
	StatusWaitingOnClient Status = "waiting_on_client"

	// StatusDone means the case is resolved and closed.
	StatusDone Status = "done"
)

// IsKnown reports whether s is one of the defined Status values.
func (s Status) IsKnown() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusWaitingOnClient, StatusDone:
		return true
	}
	return false
}

// Statuses returns every defined status in lifecycle order. The order
// is what status pickers display.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusWaitingOnClient, StatusDone}
}

// Case is a support case tracked by the server. The server assigns ID,
// Reference, and the timestamps; clients send the remaining fields on
// create and update.
type Case struct {
	// ID is the server-assigned numeric identifier. Zero on a case
	// that has not been created yet.
	ID int64 `json:"id,omitempty"`

	// Reference is the external tracker identifier shown to users
	// (e.g. "SUP-1043"). Assigned by the server, unique per case.
	Reference string `json:"reference,omitempty"`

	// Title is a short summary of the case.
	Title string `json:"title"`

	// Body is the full description, supporting markdown.
	Body string `json:"body,omitempty"`

	// Responsible is the username of the person handling the case.
	// Empty while the case is unassigned.
	Responsible string `json:"responsible,omitempty"`

	// Status is the lifecycle state. See the Status constants.
	Status Status `json:"status"`

	// Insurer is the insurance company the case concerns. Free text
	// as entered by the user (e.g. "AVLA", "DAYCOVAL").
	Insurer string `json:"insurer,omitempty"`

	// Category groups cases by subject matter (e.g. "billing",
	// "claims", "policy").
	Category string `json:"category,omitempty"`

	// Keywords are free-form tags for search and grouping.
	Keywords []string `json:"keywords,omitempty"`

	// OpenedAt is the RFC 3339 time the case was opened.
	OpenedAt string `json:"opened_at,omitempty"`

	// ClosedAt is set when status transitions to "done".
	ClosedAt string `json:"closed_at,omitempty"`

	// CreatedBy is the username of the user who opened the case.
	CreatedBy string `json:"created_by,omitempty"`

	// UpdatedAt is the RFC 3339 time of the last modification.
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Validate checks the fields a client must supply before sending a
// create. Server-assigned fields (ID, Reference, timestamps) are not
// required; partial updates go through a patch and skip this check.
func (c *Case) Validate() error {
	if c.Title == "" {
		return errors.New("case: title is required")
	}
	if c.Body == "" {
		return errors.New("case: description is required")
	}
	if c.Status == "" {
		return errors.New("case: status is required")
	}
	if !c.Status.IsKnown() {
		return fmt.Errorf("case: unknown status %q", c.Status)
	}
	for _, stamp := range []struct {
		name  string
		value string
	}{
		{"opened_at", c.OpenedAt},
		{"closed_at", c.ClosedAt},
		{"updated_at", c.UpdatedAt},
	} {
		if stamp.value == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339, stamp.value); err != nil {
			return fmt.Errorf("case: %s must be RFC 3339: %w", stamp.name, err)
		}
	}
	return nil
}

// Comment is one entry in a case's discussion thread. Internal
// comments are visible to administrators only; the server enforces
// this on write and clients filter on display.
type Comment struct {
	// ID is the server-assigned numeric identifier.
	ID int64 `json:"id,omitempty"`

	// CaseID is the case this comment belongs to.
	CaseID int64 `json:"case_id"`

	// Author is the username of the comment writer.
	Author string `json:"author,omitempty"`

	// Body is the comment text, supporting markdown.
	Body string `json:"body"`

	// Internal marks staff-only comments hidden from clients.
	Internal bool `json:"internal,omitempty"`

	// CreatedAt is the RFC 3339 time the comment was posted.
	CreatedAt string `json:"created_at,omitempty"`
}

// Validate checks the fields a client must supply when posting.
func (c *Comment) Validate() error {
	if c.CaseID == 0 {
		return errors.New("comment: case_id is required")
	}
	if c.Body == "" {
		return errors.New("comment: body is required")
	}
	return nil
}
