// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides a bounded HTTP response reader. All JSON
// API response reads go through it so that a misbehaving server cannot
// exhaust memory with an unbounded body. Not for streaming responses,
// which should be read incrementally.
package netutil

import "io"

// MaxResponseSize bounds JSON API response body reads: 64 MB.
// Legitimate casedesk responses are orders of magnitude smaller; the
// limit only exists to cap a pathological response.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}
