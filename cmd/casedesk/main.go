// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/casedesk/casedesk/cmd/casedesk/cli"
)

func main() {
	if err := cli.Root().Execute(os.Args[1:]); err != nil {
		// Commands that already printed their own output return an
		// ExitError carrying the desired code.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
