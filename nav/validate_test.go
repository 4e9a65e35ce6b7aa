package nav

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	vocab := []SectionID{"hero", "about", "contact"}

	tests := []struct {
		name    string
		entries []Entry
		vocab   []SectionID
		want    int
		substr  string
	}{
		{
			name: "clean list",
			entries: []Entry{
				{ID: "hero", Label: "Home"},
				{ID: "about", Label: "About"},
			},
			vocab: vocab,
			want:  0,
		},
		{
			name: "duplicate id",
			entries: []Entry{
				{ID: "hero", Label: "Home"},
				{ID: "hero", Label: "Home again"},
			},
			vocab:  vocab,
			want:   1,
			substr: "duplicate",
		},
		{
			name: "empty label",
			entries: []Entry{
				{ID: "hero", Label: ""},
			},
			vocab:  vocab,
			want:   1,
			substr: "empty label",
		},
		{
			name: "whitespace label",
			entries: []Entry{
				{ID: "hero", Label: "   \t"},
			},
			vocab:  vocab,
			want:   1,
			substr: "empty label",
		},
		{
			name: "outside vocabulary",
			entries: []Entry{
				{ID: "blog", Label: "Blog"},
			},
			vocab:  vocab,
			want:   1,
			substr: "vocabulary",
		},
		{
			name: "nil vocabulary accepts anything",
			entries: []Entry{
				{ID: "blog", Label: "Blog"},
			},
			vocab: nil,
			want:  0,
		},
		{
			name: "multiple findings accumulate",
			entries: []Entry{
				{ID: "hero", Label: "Home"},
				{ID: "hero", Label: ""},
				{ID: "blog", Label: "Blog"},
			},
			vocab: vocab,
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := Validate(tt.entries, tt.vocab)
			if len(warnings) != tt.want {
				t.Fatalf("got %d warnings %v, want %d", len(warnings), warnings, tt.want)
			}
			if tt.substr != "" && !strings.Contains(warnings[0], tt.substr) {
				t.Errorf("warning %q should mention %q", warnings[0], tt.substr)
			}
		})
	}
}
