// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/document.go
// Summary: Section and block model for navigable documents.

package content

import "github.com/framegrace/texelnav/nav"

// BlockKind discriminates the content block variants.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockCode
	BlockList
	BlockRule
)

// Block is one renderable unit inside a section.
type Block struct {
	Kind BlockKind

	// Heading, paragraph
	Text  string
	Level int

	// Code
	Language string
	Literal  string

	// List
	Items   []string
	Ordered bool
}

// Section is one nav-addressable region of the document. Its ID is derived
// from the section heading and stays stable as long as the heading does.
type Section struct {
	ID     nav.SectionID
	Label  string
	Level  int
	Blocks []Block
}

// Document is an ordered list of sections; order matches top-to-bottom
// visual order, which the navigation tracker's binary search depends on.
type Document struct {
	Title    string
	Sections []Section
}

// NavEntries returns the navigation list for the document's sections.
func (d *Document) NavEntries() []nav.Entry {
	entries := make([]nav.Entry, 0, len(d.Sections))
	for _, s := range d.Sections {
		entries = append(entries, nav.Entry{ID: s.ID, Label: s.Label})
	}
	return entries
}

// Section returns the section with the given id.
func (d *Document) Section(id nav.SectionID) (*Section, bool) {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i], true
		}
	}
	return nil, false
}
