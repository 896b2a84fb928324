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

// Login authenticates with username and password. On success the
// returned AuthResponse carries the bearer token; pass it to
// WithToken for authenticated calls.
func (c *Client) Login(ctx context.Context, credentials support.Credentials) (*support.AuthResponse, error) {
	if err := credentials.Validate(); err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", credentials)
	if err != nil {
		return nil, fmt.Errorf("api: login failed: %w", err)
	}

	var response support.AuthResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("api: parsing login response: %w", err)
	}
	if response.Token == "" {
		return nil, fmt.Errorf("api: login response missing token")
	}

	c.logger.Info("logged in",
		"username", response.User.Username,
		"role", response.User.Role,
	)
	return &response, nil
}

// Register creates a new account. The account starts unapproved; an
// administrator must accept it before login succeeds.
func (c *Client) Register(ctx context.Context, registration support.Registration) (*support.User, error) {
	if err := registration.Validate(); err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", registration)
	if err != nil {
		return nil, fmt.Errorf("api: registration failed: %w", err)
	}

	var user support.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("api: parsing register response: %w", err)
	}
	return &user, nil
}

// WhoAmI returns the account the client's token belongs to. This is
// the token validity check: ErrUnauthorized means the session is
// stale and the user must log in again.
func (c *Client) WhoAmI(ctx context.Context) (*support.User, error) {
	var user support.User
	if err := c.getJSON(ctx, "/api/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
