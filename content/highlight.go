// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/highlight.go
// Summary: Syntax highlighting for code blocks via chroma, with go-enry
//          language detection for fences that carry no language tag.

package content

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
)

const defaultStyleName = "catppuccin-mocha"

// Run is a stretch of text sharing one visual style.
type Run struct {
	Text      string
	Fg        tcell.Color
	Bold      bool
	Italic    bool
	Underline bool
}

// Highlighter turns code literals into per-line styled runs.
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter resolves a chroma style name, falling back to the default
// when the name is empty or unknown.
func NewHighlighter(styleName string) *Highlighter {
	if styleName == "" {
		styleName = defaultStyleName
	}
	return &Highlighter{style: styles.Get(styleName)}
}

// Highlight tokenizes code and returns one run slice per source line. The
// language hint comes from the markdown fence; when it is missing, enry
// classifies the snippet content and chroma's own analyser backs that up.
// Highlighting never fails: on any problem the code comes back as plain
// single-run lines.
func (h *Highlighter) Highlight(code, language string) [][]Run {
	lexer := h.lexerFor(language, code)
	lexer = chroma.Coalesce(lexer)

	tokens, err := chroma.Tokenise(lexer, nil, code)
	if err != nil {
		return plainLines(code)
	}

	baseColour := h.style.Get(chroma.Text).Colour

	lines := [][]Run{nil}
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		entry := h.style.Get(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			cur := len(lines) - 1
			lines[cur] = append(lines[cur], styledRun(part, entry, baseColour))
		}
	}

	// Tokenise sees a trailing newline chroma appends; drop the phantom
	// empty last line so the block height matches the literal.
	if n := len(lines); n > 1 && len(lines[n-1]) == 0 && !strings.HasSuffix(code, "\n") {
		lines = lines[:n-1]
	}
	return lines
}

// lexerFor picks a lexer from the fence hint, enry content classification,
// chroma analysis, then the fallback, in that order.
func (h *Highlighter) lexerFor(language, code string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	if name := enry.GetLanguage("", []byte(code)); name != "" && name != enry.OtherLanguage {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(code); l != nil {
		return l
	}
	return lexers.Fallback
}

// styledRun maps one chroma style entry onto a run. Colors matching the
// style's base text color stay on the terminal default foreground.
func styledRun(text string, entry chroma.StyleEntry, base chroma.Colour) Run {
	r := Run{
		Text:      text,
		Fg:        tcell.ColorDefault,
		Bold:      entry.Bold == chroma.Yes,
		Italic:    entry.Italic == chroma.Yes,
		Underline: entry.Underline == chroma.Yes,
	}
	if entry.Colour.IsSet() && entry.Colour != base {
		r.Fg = tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		)
	}
	return r
}

func plainLines(code string) [][]Run {
	raw := strings.Split(code, "\n")
	lines := make([][]Run, len(raw))
	for i, l := range raw {
		if l != "" {
			lines[i] = []Run{{Text: l, Fg: tcell.ColorDefault}}
		}
	}
	return lines
}
