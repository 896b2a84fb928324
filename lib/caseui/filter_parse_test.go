// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"testing"

	"github.com/casedesk/casedesk/lib/caseindex"
	"github.com/casedesk/casedesk/lib/schema/support"
)

func TestParseFilterQualifiers(t *testing.T) {
	tests := []struct {
		query string
		want  caseindex.Filter
	}{
		{"", caseindex.Filter{}},
		{"pooling leak", caseindex.Filter{Search: "pooling leak"}},
		{"status:done", caseindex.Filter{Status: support.StatusDone}},
		{"status:in-progress", caseindex.Filter{Status: support.StatusInProgress}},
		{"st:pending", caseindex.Filter{Status: support.StatusPending}},
		{"resp:ana", caseindex.Filter{Responsible: "ana"}},
		{"responsible:ana", caseindex.Filter{Responsible: "ana"}},
		{"ins:avla", caseindex.Filter{Insurer: "avla"}},
		{
			"renewal status:waiting_on_client resp:ana ins:avla",
			caseindex.Filter{
				Search:      "renewal",
				Status:      support.StatusWaitingOnClient,
				Responsible: "ana",
				Insurer:     "avla",
			},
		},
		// A later qualifier replaces an earlier one.
		{"status:done status:pending", caseindex.Filter{Status: support.StatusPending}},
		// Unknown status values stay visible as free text.
		{"status:bogus", caseindex.Filter{Search: "status:bogus"}},
		// Unknown qualifiers are plain search terms.
		{"foo:bar", caseindex.Filter{Search: "foo:bar"}},
		// A bare trailing colon is not a qualifier.
		{"status:", caseindex.Filter{Search: "status:"}},
	}

	for _, test := range tests {
		got := ParseFilter(test.query)
		if got != test.want {
			t.Errorf("ParseFilter(%q) = %+v, want %+v", test.query, got, test.want)
		}
	}
}

func TestDescribeFilterRoundTrip(t *testing.T) {
	filter := caseindex.Filter{
		Search:      "renewal",
		Status:      support.StatusDone,
		Responsible: "ana",
		Insurer:     "avla",
	}
	described := describeFilter(filter)
	if got := ParseFilter(described); got != filter {
		t.Errorf("round trip through describeFilter lost criteria: %q -> %+v", described, got)
	}

	if describeFilter(caseindex.Filter{}) != "" {
		t.Error("zero filter should describe as empty")
	}
}
