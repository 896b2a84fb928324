// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package support

// Notification is a per-user alert about case activity. The server
// creates them; clients list, mark read, and navigate to the case
// they reference.
type Notification struct {
	// ID is the server-assigned numeric identifier.
	ID int64 `json:"id"`

	// CaseID is the case this notification concerns. Zero for
	// notifications not tied to a case (e.g. account approval).
	CaseID int64 `json:"case_id,omitempty"`

	// Message is the display text.
	Message string `json:"message"`

	// Read is set once the user has seen the notification. Marking
	// an already-read notification read again is a no-op.
	Read bool `json:"read"`

	// CreatedAt is the RFC 3339 time the notification was created.
	CreatedAt string `json:"created_at"`
}

// UnreadCount returns how many of the given notifications are unread.
func UnreadCount(notifications []Notification) int {
	count := 0
	for i := range notifications {
		if !notifications[i].Read {
			count++
		}
	}
	return count
}
