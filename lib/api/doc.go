// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the typed HTTP client for a casedesk server.
//
// A Client created by New is unauthenticated and can only call the
// login and register endpoints. Login returns a bearer token; the
// caller injects it with WithToken to obtain an authenticated client
// for everything else. There is no ambient token state — every call
// site holds the client it was given.
//
// Every request carries no-cache headers. Case lists drive a live
// view; a cached 200 from an intermediary would present stale state
// as current.
package api
