// Package render turns assistant output into terminal-ready text.
package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the word-wrap width used when none is known.
const DefaultWidth = 80

// Renderer renders markdown with glamour.
type Renderer struct {
	tr *glamour.TermRenderer
}

// New creates a Renderer wrapping at width columns. style is a glamour
// standard style name; "" or "auto" detects the terminal background.
func New(width int, style string) (*Renderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	return &Renderer{tr: tr}, nil
}

// Markdown renders md. On a rendering error the input is returned as-is.
func (r *Renderer) Markdown(md string) string {
	out, err := r.tr.Render(md)
	if err != nil {
		return md
	}
	return out
}

// Code renders text as one fenced code block highlighted as lang.
func (r *Renderer) Code(text, lang string) string {
	return r.Markdown(CodeBlock(text, lang))
}

// CodeBlock wraps text in a markdown code fence tagged with lang. The
// fence is longer than any backtick run inside text so embedded fences
// survive intact.
func CodeBlock(text, lang string) string {
	fence := strings.Repeat("`", max(3, longestBacktickRun(text)+1))
	text = strings.TrimRight(text, "\n")
	return fence + strings.ToLower(lang) + "\n" + text + "\n" + fence + "\n"
}

func longestBacktickRun(s string) int {
	best, cur := 0, 0
	for _, r := range s {
		if r == '`' {
			cur++
			best = max(best, cur)
			continue
		}
		cur = 0
	}
	return best
}
