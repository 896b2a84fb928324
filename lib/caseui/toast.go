// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// toastDuration is how long a toast stays on screen before fading.
const toastDuration = 4 * time.Second

// toast is a transient one-line notice shown in the footer: mutation
// errors, "all notifications marked read", connectivity changes.
type toast struct {
	text    string
	isError bool

	// sequence distinguishes this toast from earlier ones so a
	// stale fade message cannot clear a newer toast.
	sequence int
}

// toastFadeMsg clears the toast identified by sequence.
type toastFadeMsg struct {
	sequence int
}

// showToast replaces the current toast and returns the command that
// fades it. The fade timer runs on the model's clock so tests can
// advance it deterministically.
func (model *Model) showToast(text string, isError bool) tea.Cmd {
	model.toastSequence++
	model.activeToast = toast{text: text, isError: isError, sequence: model.toastSequence}
	sequence := model.toastSequence
	clk := model.clock
	return func() tea.Msg {
		<-clk.After(toastDuration)
		return toastFadeMsg{sequence: sequence}
	}
}

// renderToast returns the styled toast line, or "" when none is
// active.
func (model Model) renderToast() string {
	if model.activeToast.text == "" {
		return ""
	}
	color := model.theme.ToastInfo
	if model.activeToast.isError {
		color = model.theme.ToastError
	}
	return lipgloss.NewStyle().Foreground(color).Render(model.activeToast.text)
}
