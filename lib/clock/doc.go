// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for the polling, expiry, and backoff
// logic spread across the client. Production code injects Real();
// tests inject a Fake and drive it with Advance, which makes the
// 30-second notification poll, the NEW-marker expiry sweep, and the
// push-channel reconnect backoff fully deterministic under test.
//
// Any code that would otherwise call time.Now, time.After,
// time.AfterFunc, or time.NewTicker takes a Clock instead.
package clock
