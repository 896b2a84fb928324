// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdownParser is shared across renders; goldmark parsers are safe
// for concurrent use.
var markdownParser = sync.OnceValue(func() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
})

// renderMarkdown renders markdown source as ANSI-styled terminal text
// wrapped to the given width. Rendering never fails: on a parse
// problem the source is returned wrapped but unstyled.
func renderMarkdown(source string, width int, theme Theme) string {
	if width < 20 {
		width = 20
	}
	reader := text.NewReader([]byte(source))
	document := markdownParser().Parser().Parse(reader)

	renderer := &markdownWriter{
		source: []byte(source),
		width:  width,
		theme:  theme,
		// Force ANSI 256 output regardless of the detected terminal
		// profile so styles survive bubbletea's renderer.
		styler: lipgloss.NewRenderer(nil, termenv.WithProfile(termenv.ANSI256)),
	}
	if err := ast.Walk(document, renderer.walk); err != nil {
		return ansi.Wrap(source, width, " ")
	}
	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownWriter walks the goldmark AST and accumulates styled text.
// Inline content is collected into a buffer and word-wrapped when its
// enclosing block closes.
type markdownWriter struct {
	source []byte
	width  int
	theme  Theme
	styler *lipgloss.Renderer

	output strings.Builder
	inline strings.Builder

	boldDepth   int
	italicDepth int
	strikeDepth int
	quoteDepth  int
	listDepth   int
	ordinal     []int // per-level counter for ordered lists; 0 means bulleted
}

func (writer *markdownWriter) style() lipgloss.Style {
	return writer.styler.NewStyle()
}

func (writer *markdownWriter) prefix() string {
	return strings.Repeat("│ ", writer.quoteDepth) + strings.Repeat("  ", writer.listDepth)
}

// flushBlock wraps the accumulated inline text, applies the current
// block prefix to every line, and writes it out followed by a blank
// line separator.
func (writer *markdownWriter) flushBlock(bullet string) {
	content := writer.inline.String()
	writer.inline.Reset()
	if content == "" {
		return
	}

	prefix := writer.prefix()
	wrapWidth := writer.width - lipgloss.Width(prefix) - lipgloss.Width(bullet)
	if wrapWidth < 10 {
		wrapWidth = 10
	}
	wrapped := ansi.Wrap(content, wrapWidth, " ,.;-")

	continuation := prefix + strings.Repeat(" ", lipgloss.Width(bullet))
	for index, line := range strings.Split(wrapped, "\n") {
		if index == 0 {
			writer.output.WriteString(prefix + bullet + line + "\n")
		} else {
			writer.output.WriteString(continuation + line + "\n")
		}
	}
	if writer.listDepth == 0 {
		writer.output.WriteString("\n")
	}
}

func (writer *markdownWriter) inlineText(content string) string {
	style := writer.style().Foreground(writer.theme.NormalText)
	if writer.boldDepth > 0 {
		style = style.Bold(true)
	}
	if writer.italicDepth > 0 {
		style = style.Italic(true)
	}
	if writer.strikeDepth > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (writer *markdownWriter) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch typed := node.(type) {

	case *ast.Heading:
		if !entering {
			heading := writer.inline.String()
			writer.inline.Reset()
			style := writer.style().Foreground(writer.theme.TitleText).Bold(true)
			if typed.Level >= 3 {
				style = style.Foreground(writer.theme.AccentText)
			}
			marker := strings.Repeat("#", typed.Level) + " "
			writer.output.WriteString(style.Render(marker+heading) + "\n\n")
		}

	case *ast.Paragraph, *ast.TextBlock:
		if !entering {
			writer.flushBlock("")
		}

	case *ast.Blockquote:
		if entering {
			writer.quoteDepth++
		} else {
			writer.quoteDepth--
		}

	case *ast.List:
		if entering {
			ordinal := 0
			if typed.IsOrdered() {
				ordinal = typed.Start
			}
			writer.ordinal = append(writer.ordinal, ordinal)
			writer.listDepth++
		} else {
			writer.ordinal = writer.ordinal[:len(writer.ordinal)-1]
			writer.listDepth--
			if writer.listDepth == 0 {
				writer.output.WriteString("\n")
			}
		}

	case *ast.ListItem:
		if entering {
			// Render the item's children ourselves so the bullet can
			// attach to the first block.
			writer.listDepth-- // bullet sits at the list's own indent
			bullet := "• "
			level := len(writer.ordinal) - 1
			if writer.ordinal[level] > 0 {
				bullet = fmt.Sprintf("%d. ", writer.ordinal[level])
				writer.ordinal[level]++
			}
			first := true
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				kind := child.Kind()
				if kind == ast.KindParagraph || kind == ast.KindTextBlock {
					if err := writer.walkChildren(child); err != nil {
						return ast.WalkStop, err
					}
					if first {
						writer.flushBlock(bullet)
						first = false
					} else {
						writer.flushBlock("")
					}
					continue
				}
				writer.listDepth++
				if err := ast.Walk(child, writer.walk); err != nil {
					return ast.WalkStop, err
				}
				writer.listDepth--
			}
			writer.listDepth++
			return ast.WalkSkipChildren, nil
		}

	case *ast.FencedCodeBlock:
		if entering {
			language := string(typed.Language(writer.source))
			writer.writeCodeBlock(writer.blockLines(typed), language)
			return ast.WalkSkipChildren, nil
		}

	case *ast.CodeBlock:
		if entering {
			writer.writeCodeBlock(writer.blockLines(typed), "")
			return ast.WalkSkipChildren, nil
		}

	case *ast.ThematicBreak:
		if entering {
			rule := strings.Repeat("─", writer.width)
			writer.output.WriteString(writer.style().Foreground(writer.theme.Border).Render(rule) + "\n\n")
		}

	case *ast.Text:
		if entering {
			writer.inline.WriteString(writer.inlineText(string(typed.Segment.Value(writer.source))))
			if typed.SoftLineBreak() {
				writer.inline.WriteString(" ")
			}
			if typed.HardLineBreak() {
				writer.inline.WriteString("\n")
			}
		}

	case *ast.Emphasis:
		if entering {
			if typed.Level >= 2 {
				writer.boldDepth++
			} else {
				writer.italicDepth++
			}
		} else {
			if typed.Level >= 2 {
				writer.boldDepth--
			} else {
				writer.italicDepth--
			}
		}

	case *east.Strikethrough:
		if entering {
			writer.strikeDepth++
		} else {
			writer.strikeDepth--
		}

	case *ast.CodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if segment, ok := child.(*ast.Text); ok {
					code.Write(segment.Segment.Value(writer.source))
				}
			}
			writer.inline.WriteString(writer.style().
				Foreground(writer.theme.AccentText).
				Render(code.String()))
			return ast.WalkSkipChildren, nil
		}

	case *ast.Link:
		if !entering {
			destination := string(typed.Destination)
			writer.inline.WriteString(writer.style().
				Foreground(writer.theme.FaintText).
				Render(" ("+destination+")"))
		}

	case *ast.AutoLink:
		if entering {
			writer.inline.WriteString(writer.style().
				Foreground(writer.theme.AccentText).
				Underline(true).
				Render(string(typed.URL(writer.source))))
		}
	}
	return ast.WalkContinue, nil
}

func (writer *markdownWriter) walkChildren(node ast.Node) error {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if err := ast.Walk(child, writer.walk); err != nil {
			return err
		}
	}
	return nil
}

// blockLines collects the raw source lines of a code block.
func (writer *markdownWriter) blockLines(node ast.Node) string {
	var code strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(writer.source))
	}
	return code.String()
}

// writeCodeBlock emits a code block, syntax-highlighted via chroma
// when the fence names a language chroma knows. Highlighting failures
// fall back to faint unstyled text.
func (writer *markdownWriter) writeCodeBlock(code, language string) {
	rendered := ""
	if language != "" {
		var highlighted strings.Builder
		if err := quick.Highlight(&highlighted, code, language, "terminal256", "monokai"); err == nil {
			rendered = highlighted.String()
		}
	}
	if rendered == "" {
		rendered = writer.style().Foreground(writer.theme.FaintText).Render(code)
	}

	prefix := writer.prefix() + "  "
	for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
		writer.output.WriteString(prefix + line + "\n")
	}
	writer.output.WriteString("\n")
}
