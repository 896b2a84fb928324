// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"encoding/json"
	"fmt"
)

// Live event type discriminators. The server broadcasts one JSON
// object per event on the push channel, tagged by the "type" field.
const (
	// EventTypeNewCase announces a freshly created case. The full
	// case payload rides along so clients can display it without a
	// fetch.
	EventTypeNewCase = "new_case"

	// EventTypeCaseUpdated announces a change to an existing case.
	// Only the case ID rides along; clients refetch for the new
	// state.
	EventTypeCaseUpdated = "case_updated"
)

// ErrUnknownEvent is wrapped by DecodeLiveEvent for event types this
// client does not recognize. Callers log and drop such events rather
// than failing the stream.
var ErrUnknownEvent = fmt.Errorf("unknown live event type")

// LiveEvent is one message from the push channel. Exactly one of the
// payload fields is populated, selected by Type.
type LiveEvent struct {
	// Type is the event discriminator. See the EventType constants.
	Type string `json:"type"`

	// Case is the created case. Set for "new_case" only.
	Case *Case `json:"case,omitempty"`

	// CaseID is the changed case's identifier. Set for
	// "case_updated" only.
	CaseID int64 `json:"case_id,omitempty"`
}

// DecodeLiveEvent parses one push channel message. Returns an error
// wrapping ErrUnknownEvent for types this client does not understand,
// and a plain error for malformed payloads.
func DecodeLiveEvent(data []byte) (LiveEvent, error) {
	var event LiveEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return LiveEvent{}, fmt.Errorf("decoding live event: %w", err)
	}
	switch event.Type {
	case EventTypeNewCase:
		if event.Case == nil {
			return LiveEvent{}, fmt.Errorf("live event %q: missing case payload", event.Type)
		}
	case EventTypeCaseUpdated:
		if event.CaseID == 0 {
			return LiveEvent{}, fmt.Errorf("live event %q: missing case_id", event.Type)
		}
	case "":
		return LiveEvent{}, fmt.Errorf("live event: missing type")
	default:
		return LiveEvent{}, fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}
	return event, nil
}
