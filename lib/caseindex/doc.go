// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package caseindex holds the client-side case list state: the
// ordered index the list view renders, the expiring NEW markers, and
// the filter model. Everything here is pure data manipulation — no
// I/O, no goroutines, no clocks. Callers feed in fetched lists, live
// events, and the current time; the package answers what to display.
//
// Consistency model: a full fetch (ReplaceAll) always wins over
// accumulated live merges. Live events only bridge the gap between
// fetches, so a duplicate or missed event can never corrupt state
// that outlives the next fetch.
package caseindex
