// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the status codes callers branch on. Matched
// with errors.Is against any error returned by a Client method.
var (
	// ErrNotFound means the requested resource does not exist (404).
	// The detail view renders a not-found state for this instead of
	// an error toast.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the token is missing, expired, or
	// revoked (401). Callers clear the session and prompt for a new
	// login.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is a non-2xx response from the server. Callers can use
// errors.As for the status code and message, or errors.Is with
// ErrNotFound / ErrUnauthorized for the common branches.
type StatusError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Message is the server's error description, or the raw body
	// when the server returned something other than the standard
	// {"error": "..."} shape.
	Message string

	// Method and Path identify the failed request.
	Method string
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Is maps the status code onto the package sentinels so that
// errors.Is(err, ErrNotFound) works without unwrapping by hand.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// newStatusError builds a StatusError from an error response body.
// The server's error responses use the shape {"error": "..."}; other
// bodies are carried raw.
func newStatusError(statusCode int, method, path string, body []byte) *StatusError {
	var payload struct {
		Error string `json:"error"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	return &StatusError{
		StatusCode: statusCode,
		Message:    message,
		Method:     method,
		Path:       path,
	}
}
