// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casedesk/casedesk/lib/schema/support"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, server
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`[]`))
	}))

	if _, err := client.WithToken("tok-123").ListCases(context.Background()); err != nil {
		t.Fatalf("ListCases: %v", err)
	}

	if auth := got.Get("Authorization"); auth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", auth, "Bearer tok-123")
	}
	if cc := got.Get("Cache-Control"); cc != "no-cache, no-store, must-revalidate" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if pragma := got.Get("Pragma"); pragma != "no-cache" {
		t.Errorf("Pragma = %q, want no-cache", pragma)
	}
	if expires := got.Get("Expires"); expires != "0" {
		t.Errorf("Expires = %q, want 0", expires)
	}
}

func TestWithTokenDoesNotMutateReceiver(t *testing.T) {
	var auth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	client.WithToken("tok-123")

	// The original client must still send no Authorization header.
	if _, err := client.ListCases(context.Background()); err != nil {
		t.Fatalf("ListCases: %v", err)
	}
	if auth != "" {
		t.Errorf("unauthenticated client sent Authorization = %q", auth)
	}
}

func TestStatusErrorMapping(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cases/404":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "no such case"}`))
		case "/api/auth/me":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "token expired"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`boom`))
		}
	}))

	_, err := client.GetCase(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCase = %v, want ErrNotFound", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Message != "no such case" {
		t.Errorf("StatusError = %+v, want message %q", statusErr, "no such case")
	}

	_, err = client.WhoAmI(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("WhoAmI = %v, want ErrUnauthorized", err)
	}

	_, err = client.DashboardStats(context.Background())
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) {
		t.Errorf("DashboardStats = %v, want plain StatusError", err)
	}
	if !errors.As(err, &statusErr) || statusErr.Message != "boom" {
		t.Errorf("StatusError = %+v, want raw body %q", statusErr, "boom")
	}
}

func TestLogin(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var credentials support.Credentials
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			t.Errorf("decoding credentials: %v", err)
		}
		if credentials.Username != "ana" || credentials.Password != "hunter2" {
			t.Errorf("credentials = %+v", credentials)
		}
		json.NewEncoder(w).Encode(support.AuthResponse{
			Token: "tok-abc",
			User:  support.User{Username: "ana", Role: support.RoleAdministrator},
		})
	}))

	response, err := client.Login(context.Background(), support.Credentials{
		Username: "ana",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if response.Token != "tok-abc" {
		t.Errorf("Token = %q, want tok-abc", response.Token)
	}
	if !response.User.IsAdmin() {
		t.Error("User.IsAdmin() = false, want true")
	}
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	client, err := New(Config{BaseURL: "http://localhost:1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Must fail before any network I/O.
	if _, err := client.Login(context.Background(), support.Credentials{}); err == nil {
		t.Fatal("Login with empty credentials should fail")
	}
}

func TestUpdateCaseSendsOnlyPatchedFields(t *testing.T) {
	var body []byte
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/cases/9" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(support.Case{ID: 9, Title: "t", Status: support.StatusDone})
	}))

	status := support.StatusDone
	updated, err := client.UpdateCase(context.Background(), 9, CasePatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateCase: %v", err)
	}
	if updated.Status != support.StatusDone {
		t.Errorf("Status = %q, want done", updated.Status)
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		t.Fatalf("request body %q: %v", body, err)
	}
	if len(fields) != 1 {
		t.Errorf("patch body has fields %v, want only status", fields)
	}
	if fields["status"] != "done" {
		t.Errorf("status field = %v, want done", fields["status"])
	}
}

func TestMarkNotificationRead(t *testing.T) {
	var path string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.MarkNotificationRead(context.Background(), 31); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}
	if path != "POST /api/notifications/31/read" {
		t.Errorf("request = %q", path)
	}
}

func TestWebSocketURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://desk.local:8080", "ws://desk.local:8080/ws"},
		{"https://desk.example.com", "wss://desk.example.com/ws"},
		{"https://desk.example.com/", "wss://desk.example.com/ws"},
	}
	for _, test := range tests {
		client, err := New(Config{BaseURL: test.base})
		if err != nil {
			t.Fatalf("New(%q): %v", test.base, err)
		}
		if got := client.WebSocketURL(); got != test.want {
			t.Errorf("WebSocketURL(%q) = %q, want %q", test.base, got, test.want)
		}
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	for _, base := range []string{"", "ftp://desk.local", "not a url at all\x7f://"} {
		if _, err := New(Config{BaseURL: base}); err == nil {
			t.Errorf("New(%q) succeeded, want error", base)
		}
	}
}
