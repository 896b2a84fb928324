// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"fmt"

	"github.com/muesli/termenv"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// TerminalAlerter announces fresh notifications through the terminal:
// an audible bell and an OSC 777 desktop notification. Both are off
// by default and enabled by explicit config — an unrequested bell in
// a shared terminal is the wrong default.
type TerminalAlerter struct {
	output  *termenv.Output
	sound   bool
	desktop bool
}

// NewTerminalAlerter wraps the given termenv output. sound rings the
// bell; desktop emits the OSC notification for terminals that map it
// to the OS notification center.
func NewTerminalAlerter(output *termenv.Output, sound, desktop bool) *TerminalAlerter {
	return &TerminalAlerter{output: output, sound: sound, desktop: desktop}
}

// Alert implements Alerter.
func (a *TerminalAlerter) Alert(fresh []support.Notification) {
	if len(fresh) == 0 {
		return
	}
	if a.sound {
		a.output.WriteString("\a")
	}
	if a.desktop {
		body := fresh[0].Message
		if len(fresh) > 1 {
			body = fmt.Sprintf("%s (and %d more)", fresh[0].Message, len(fresh)-1)
		}
		a.output.Notify("Casedesk", body)
	}
}
