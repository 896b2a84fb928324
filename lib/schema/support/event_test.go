// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"errors"
	"testing"
)

func TestDecodeLiveEventNewCase(t *testing.T) {
	payload := []byte(`{
		"type": "new_case",
		"case": {"id": 42, "reference": "SUP-1100", "title": "New claim", "status": "pending"}
	}`)

	event, err := DecodeLiveEvent(payload)
	if err != nil {
		t.Fatalf("DecodeLiveEvent: %v", err)
	}
	if event.Type != EventTypeNewCase {
		t.Errorf("Type = %q, want %q", event.Type, EventTypeNewCase)
	}
	if event.Case == nil || event.Case.ID != 42 {
		t.Fatalf("Case = %+v, want ID 42", event.Case)
	}
	if event.Case.Status != StatusPending {
		t.Errorf("Case.Status = %q, want %q", event.Case.Status, StatusPending)
	}
}

func TestDecodeLiveEventCaseUpdated(t *testing.T) {
	event, err := DecodeLiveEvent([]byte(`{"type": "case_updated", "case_id": 17}`))
	if err != nil {
		t.Fatalf("DecodeLiveEvent: %v", err)
	}
	if event.CaseID != 17 {
		t.Errorf("CaseID = %d, want 17", event.CaseID)
	}
	if event.Case != nil {
		t.Errorf("Case = %+v, want nil", event.Case)
	}
}

func TestDecodeLiveEventUnknownType(t *testing.T) {
	_, err := DecodeLiveEvent([]byte(`{"type": "server_restart"}`))
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("err = %v, want ErrUnknownEvent", err)
	}
}

func TestDecodeLiveEventMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":             `{`,
		"missing type":         `{"case_id": 3}`,
		"new_case sans case":   `{"type": "new_case"}`,
		"updated sans case_id": `{"type": "case_updated"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeLiveEvent([]byte(payload)); err == nil {
				t.Fatalf("DecodeLiveEvent(%q) succeeded, want error", payload)
			} else if errors.Is(err, ErrUnknownEvent) {
				t.Fatalf("DecodeLiveEvent(%q) = ErrUnknownEvent, want plain error", payload)
			}
		})
	}
}

func TestRegistrationValidate(t *testing.T) {
	registration := Registration{
		Username: "joao",
		Email:    "joao@example.com",
		Password: "hunter2",
	}
	if err := registration.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	registration.Email = "not-an-email"
	if err := registration.Validate(); err == nil {
		t.Fatal("Validate() with malformed email should fail")
	}
}
