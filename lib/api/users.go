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

// User management endpoints. All of these require the administrator
// role; the server returns 403 for anyone else.

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context) ([]support.User, error) {
	var users []support.User
	if err := c.getJSON(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListPendingUsers returns self-registered accounts awaiting approval.
func (c *Client) ListPendingUsers(ctx context.Context) ([]support.User, error) {
	var users []support.User
	if err := c.getJSON(ctx, "/api/users/pending", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ApproveUser accepts a pending registration, allowing the account to
// log in.
func (c *Client) ApproveUser(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/approve", id), nil)
	return err
}

// UpdateUser replaces an account's profile fields (name, email, role).
// Username and password are not changed through this endpoint.
func (c *Client) UpdateUser(ctx context.Context, id int64, user support.User) (*support.User, error) {
	if user.Role != "" && !user.Role.IsKnown() {
		return nil, fmt.Errorf("api: unknown role %q", user.Role)
	}

	body, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), user)
	if err != nil {
		return nil, err
	}

	var updated support.User
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("api: parsing update user response: %w", err)
	}
	return &updated, nil
}

// DeleteUser removes an account. The server rejects deleting the last
// administrator.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil)
	return err
}
