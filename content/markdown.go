// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/markdown.go
// Summary: Parses markdown into the section/block model using goldmark.
// Notes: The H1 opens the leading section; every H2 starts a new one.
//        Deeper headings stay inside their section as plain blocks.

package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/framegrace/texelnav/nav"
)

// ParseMarkdown builds a Document from markdown source. Content appearing
// before any heading is collected into an implicit leading section so every
// block stays reachable from the navigation rail. Headings may pin their
// section id with an attribute, e.g. `# Marc Serra {#hero}`; otherwise the
// id is slugified from the heading text.
func ParseMarkdown(src []byte) (*Document, error) {
	md := goldmark.New(goldmark.WithParserOptions(parser.WithAttribute()))
	root := md.Parser().Parse(text.NewReader(src))

	doc := &Document{}
	slugs := make(map[string]int)

	current := func() *Section {
		if len(doc.Sections) == 0 {
			doc.Sections = append(doc.Sections, Section{
				ID:    uniqueSlug("intro", slugs),
				Label: "Introduction",
				Level: 1,
			})
		}
		return &doc.Sections[len(doc.Sections)-1]
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			switch {
			case node.Level == 1:
				if doc.Title == "" {
					doc.Title = title
				}
				doc.Sections = append(doc.Sections, Section{
					ID:    uniqueSlug(headingSlug(node, title), slugs),
					Label: title,
					Level: 1,
				})
			case node.Level == 2:
				doc.Sections = append(doc.Sections, Section{
					ID:    uniqueSlug(headingSlug(node, title), slugs),
					Label: title,
					Level: 2,
				})
			default:
				s := current()
				s.Blocks = append(s.Blocks, Block{
					Kind:  BlockHeading,
					Text:  title,
					Level: node.Level,
				})
			}

		case *ast.FencedCodeBlock:
			s := current()
			s.Blocks = append(s.Blocks, Block{
				Kind:     BlockCode,
				Language: string(node.Language(src)),
				Literal:  blockLines(node, src),
			})

		case *ast.CodeBlock:
			s := current()
			s.Blocks = append(s.Blocks, Block{
				Kind:    BlockCode,
				Literal: blockLines(node, src),
			})

		case *ast.List:
			s := current()
			s.Blocks = append(s.Blocks, Block{
				Kind:    BlockList,
				Items:   listItems(node, src),
				Ordered: node.IsOrdered(),
			})

		case *ast.ThematicBreak:
			s := current()
			s.Blocks = append(s.Blocks, Block{Kind: BlockRule})

		default:
			if t := inlineText(n, src); t != "" {
				s := current()
				s.Blocks = append(s.Blocks, Block{Kind: BlockParagraph, Text: t})
			}
		}
	}

	if doc.Title == "" && len(doc.Sections) > 0 {
		doc.Title = doc.Sections[0].Label
	}
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("markdown document has no content")
	}
	return doc, nil
}

// blockLines concatenates the raw source lines of a code block, dropping the
// trailing newline so the block's line count equals its visible height.
func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// listItems flattens each list item to its inline text.
func listItems(list *ast.List, src []byte) []string {
	var items []string
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var buf bytes.Buffer
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if t := inlineText(c, src); t != "" {
				if buf.Len() > 0 {
					buf.WriteByte(' ')
				}
				buf.WriteString(t)
			}
		}
		items = append(items, buf.String())
	}
	return items
}

// inlineText collects the text content of a node's inline children.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Segment.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte(' ')
				}
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

// headingSlug prefers an explicit `{#id}` attribute over the slugified
// heading text.
func headingSlug(h *ast.Heading, title string) string {
	if v, ok := h.AttributeString("id"); ok {
		switch id := v.(type) {
		case []byte:
			if len(id) > 0 {
				return string(id)
			}
		case string:
			if id != "" {
				return id
			}
		}
	}
	return slugify(title)
}

// slugify reduces heading text to a stable section identifier: lowercase,
// alphanumerics kept, everything else collapsed to single dashes.
func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		slug = "section"
	}
	return slug
}

// uniqueSlug suffixes repeated slugs with a counter so identifiers stay
// unique even when two headings share their text.
func uniqueSlug(slug string, seen map[string]int) nav.SectionID {
	seen[slug]++
	if n := seen[slug]; n > 1 {
		return nav.SectionID(fmt.Sprintf("%s-%d", slug, n))
	}
	return nav.SectionID(slug)
}
