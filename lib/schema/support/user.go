// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"errors"
	"fmt"
	"strings"
)

// Role determines what a user may see and do. Administrators manage
// users and see internal comments; clients see their own cases and
// public comments.
type Role string

const (
	// RoleClient is the default role for self-registered users.
	RoleClient Role = "client"

	// RoleAdministrator grants user management and internal comment
	// visibility.
	RoleAdministrator Role = "administrator"
)

// IsKnown reports whether r is one of the defined Role values.
func (r Role) IsKnown() bool {
	return r == RoleClient || r == RoleAdministrator
}

// User is an account on the server. Password material never appears
// here; see Credentials and Registration for the write-side payloads.
type User struct {
	// ID is the server-assigned numeric identifier.
	ID int64 `json:"id,omitempty"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Name is the display name.
	Name string `json:"name,omitempty"`

	// Email is the contact address.
	Email string `json:"email,omitempty"`

	// Role is the permission level. See the Role constants.
	Role Role `json:"role"`

	// Approved is false for self-registered accounts an administrator
	// has not yet accepted. Unapproved accounts cannot log in.
	Approved bool `json:"approved"`

	// CreatedAt is the RFC 3339 time the account was registered.
	CreatedAt string `json:"created_at,omitempty"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdministrator
}

// Credentials is the login request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (c *Credentials) Validate() error {
	if c.Username == "" {
		return errors.New("credentials: username is required")
	}
	if c.Password == "" {
		return errors.New("credentials: password is required")
	}
	return nil
}

// Registration is the account creation request payload. New accounts
// start as unapproved clients.
type Registration struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks required fields and the email shape. The server
// performs its own validation; this catches obvious mistakes before a
// network round trip.
func (r *Registration) Validate() error {
	if r.Username == "" {
		return errors.New("registration: username is required")
	}
	if r.Email == "" {
		return errors.New("registration: email is required")
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("registration: %q does not look like an email address", r.Email)
	}
	if r.Password == "" {
		return errors.New("registration: password is required")
	}
	return nil
}

// AuthResponse is what the server returns from a successful login.
// The token is an opaque bearer credential; clients attach it to
// every subsequent request and never inspect it.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
