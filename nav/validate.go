package nav

import (
	"fmt"
	"strings"
)

// Validate runs the one-shot structural check over an ordered entry list:
// duplicate identifiers, empty or whitespace-only labels, and identifiers
// outside the accepted vocabulary when one is supplied (nil disables the
// vocabulary check). Problems are returned as warnings, one per finding;
// nothing here is fatal and callers are expected to keep operating on the
// entries they were given.
func Validate(entries []Entry, vocabulary []SectionID) []string {
	var warnings []string

	var vocab map[SectionID]bool
	if vocabulary != nil {
		vocab = make(map[SectionID]bool, len(vocabulary))
		for _, id := range vocabulary {
			vocab[id] = true
		}
	}

	seen := make(map[SectionID]bool, len(entries))
	for i, e := range entries {
		if seen[e.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate section id %q at index %d", e.ID, i))
		}
		seen[e.ID] = true

		if strings.TrimSpace(e.Label) == "" {
			warnings = append(warnings, fmt.Sprintf("section %q has an empty label", e.ID))
		}

		if vocab != nil && !vocab[e.ID] {
			warnings = append(warnings, fmt.Sprintf("section id %q is not in the accepted vocabulary", e.ID))
		}
	}
	return warnings
}
