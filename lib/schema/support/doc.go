// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package support defines the wire types exchanged with a casedesk
// server: cases, comments, notifications, users, authentication
// payloads, dashboard aggregates, and the live event stream. All
// types serialize as JSON with snake_case field names.
//
// Timestamps are RFC 3339 strings rather than time.Time so that
// round-tripping an event through code that does not understand a
// field never reformats server-issued values.
package support
