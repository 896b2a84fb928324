// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// stripped renders markdown and returns ANSI-stripped visible text.
func stripped(input string, width int) string {
	return ansi.Strip(renderMarkdown(input, width, DefaultTheme()))
}

func TestMarkdownParagraphReflow(t *testing.T) {
	// Hard-wrapped source should reflow at a wide width.
	input := "This paragraph was written\nat a narrow width with\nhard breaks in it."
	result := stripped(input, 120)

	if strings.Contains(result, "\n") {
		t.Errorf("expected single line at width 120, got:\n%s", result)
	}
	if !strings.Contains(result, "written at a narrow") {
		t.Errorf("soft breaks should become spaces, got:\n%s", result)
	}
}

func TestMarkdownWrapsToWidth(t *testing.T) {
	input := strings.Repeat("word ", 30)
	result := stripped(input, 40)
	for _, line := range strings.Split(result, "\n") {
		if len(line) > 40 {
			t.Errorf("line exceeds width 40: %q", line)
		}
	}
}

func TestMarkdownHeading(t *testing.T) {
	result := stripped("# Claim review\n\nbody text", 80)
	if !strings.Contains(result, "# Claim review") {
		t.Errorf("heading missing, got:\n%s", result)
	}
	if !strings.Contains(result, "body text") {
		t.Errorf("paragraph missing, got:\n%s", result)
	}
}

func TestMarkdownBulletList(t *testing.T) {
	result := stripped("- first item\n- second item", 80)
	if !strings.Contains(result, "• first item") {
		t.Errorf("bullet missing, got:\n%s", result)
	}
	if !strings.Contains(result, "• second item") {
		t.Errorf("second bullet missing, got:\n%s", result)
	}
}

func TestMarkdownOrderedList(t *testing.T) {
	result := stripped("1. alpha\n2. beta", 80)
	if !strings.Contains(result, "1. alpha") || !strings.Contains(result, "2. beta") {
		t.Errorf("ordered markers missing, got:\n%s", result)
	}
}

func TestMarkdownCodeBlock(t *testing.T) {
	result := stripped("```\ncurl -v https://example.com\n```", 80)
	if !strings.Contains(result, "curl -v https://example.com") {
		t.Errorf("code content missing, got:\n%s", result)
	}
}

func TestMarkdownBlockquote(t *testing.T) {
	result := stripped("> quoted text", 80)
	if !strings.Contains(result, "│ quoted text") {
		t.Errorf("blockquote prefix missing, got:\n%s", result)
	}
}

func TestMarkdownLinkShowsDestination(t *testing.T) {
	result := stripped("see [the policy](https://example.com/policy)", 80)
	if !strings.Contains(result, "the policy") {
		t.Errorf("link text missing, got:\n%s", result)
	}
	if !strings.Contains(result, "https://example.com/policy") {
		t.Errorf("link destination missing, got:\n%s", result)
	}
}

func TestMarkdownEmpty(t *testing.T) {
	if result := renderMarkdown("", 80, DefaultTheme()); result != "" {
		t.Errorf("expected empty output for empty input, got %q", result)
	}
}
