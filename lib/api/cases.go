// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// ListCases returns every case visible to the authenticated user,
// newest first. Filtering happens client-side; the list view composes
// its filters without a network round trip.
func (c *Client) ListCases(ctx context.Context) ([]support.Case, error) {
	var cases []support.Case
	if err := c.getJSON(ctx, "/api/cases", &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// GetCase returns one case by ID. Returns ErrNotFound (wrapped) when
// the case does not exist or is not visible to the user.
func (c *Client) GetCase(ctx context.Context, id int64) (*support.Case, error) {
	var result support.Case
	if err := c.getJSON(ctx, fmt.Sprintf("/api/cases/%d", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateCase opens a new case. The server assigns ID, Reference, and
// timestamps; the returned case carries them.
func (c *Client) CreateCase(ctx context.Context, newCase support.Case) (*support.Case, error) {
	if err := newCase.Validate(); err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/cases", newCase)
	if err != nil {
		return nil, err
	}

	var created support.Case
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("api: parsing create case response: %w", err)
	}
	return &created, nil
}

// CasePatch is a partial case update. Nil fields are left unchanged
// by the server, so a status quick-change sends only Status.
type CasePatch struct {
	Title       *string         `json:"title,omitempty"`
	Body        *string         `json:"body,omitempty"`
	Responsible *string         `json:"responsible,omitempty"`
	Status      *support.Status `json:"status,omitempty"`
	Insurer     *string         `json:"insurer,omitempty"`
	Category    *string         `json:"category,omitempty"`
	Keywords    *[]string       `json:"keywords,omitempty"`
}

// UpdateCase applies a partial update and returns the case as the
// server now has it.
func (c *Client) UpdateCase(ctx context.Context, id int64, patch CasePatch) (*support.Case, error) {
	if patch.Status != nil && !patch.Status.IsKnown() {
		return nil, fmt.Errorf("api: unknown status %q", *patch.Status)
	}

	body, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/cases/%d", id), patch)
	if err != nil {
		return nil, err
	}

	var updated support.Case
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("api: parsing update case response: %w", err)
	}
	return &updated, nil
}

// DeleteCase removes a case. Administrator only; the server rejects
// other roles.
func (c *Client) DeleteCase(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/cases/%d", id), nil)
	return err
}

// ListComments returns the discussion thread for a case in posting
// order. The server already filters internal comments for non-admin
// callers; clients filter again on display as a second guard.
func (c *Client) ListComments(ctx context.Context, caseID int64) ([]support.Comment, error) {
	var comments []support.Comment
	if err := c.getJSON(ctx, fmt.Sprintf("/api/cases/%d/comments", caseID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment to a case's thread.
func (c *Client) AddComment(ctx context.Context, comment support.Comment) (*support.Comment, error) {
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/cases/%d/comments", comment.CaseID), comment)
	if err != nil {
		return nil, err
	}

	var created support.Comment
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("api: parsing add comment response: %w", err)
	}
	return &created, nil
}
