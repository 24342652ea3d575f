// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/booklet/pkg/types"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name         string
		authors      string
		affiliations string
		want         string
	}{
		{
			name:         "one author per affiliation",
			authors:      "Jane Doe1, John Smith2",
			affiliations: "1University A, 2University B",
			want:         "Jane Doe, *University A*\nJohn Smith, *University B*",
		},
		{
			name:         "unmarked author goes to Unknown",
			authors:      "Jane Doe",
			affiliations: "1University A",
			want:         "Jane Doe, *Unknown*",
		},
		{
			name:         "shared affiliation groups authors",
			authors:      "Jane Doe1, Ann Lee2, John Smith1",
			affiliations: "1University A, 2University B",
			want:         "Jane Doe, John Smith, *University A*\nAnn Lee, *University B*",
		},
		{
			name:         "unresolved marker yields empty affiliation",
			authors:      "Jane Doe3",
			affiliations: "1University A",
			want:         "Jane Doe, **",
		},
		{
			name:         "multiple markers concatenate into one key",
			authors:      "Jane Doe1,2",
			affiliations: "1University A, 2University B",
			want:         "Jane Doe,, **",
		},
		{
			name:         "superscript markers",
			authors:      "Jane Doe¹, John Smith²",
			affiliations: "¹University A, ²University B",
			want:         "Jane Doe, *University A*\nJohn Smith, *University B*",
		},
		{
			name:         "affiliation tokens without marker are ignored",
			authors:      "Jane Doe1",
			affiliations: "University X, 1University A",
			want:         "Jane Doe, *University A*",
		},
		{
			name:         "affiliation whitespace trimmed",
			authors:      "Jane Doe1",
			affiliations: "1  University A  ",
			want:         "Jane Doe, *University A*",
		},
		{
			name:         "empty affiliations",
			authors:      "Jane Doe, John Smith",
			affiliations: "",
			want:         "Jane Doe, John Smith, *Unknown*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.authors, tt.affiliations))
		})
	}
}

func TestGroupOrder(t *testing.T) {
	got := Group("Ann Lee2, Bo Chen, Jane Doe1, Cy Park2", "1University A, 2University B")
	want := []types.AuthorGroup{
		{Affiliation: "University B", Names: []string{"Ann Lee", "Cy Park"}},
		{Affiliation: types.UnknownAffiliation, Names: []string{"Bo Chen"}},
		{Affiliation: "University A", Names: []string{"Jane Doe"}},
	}
	assert.Equal(t, want, got)
}

func TestGroupMergesSameAffiliationName(t *testing.T) {
	got := Group("Jane Doe1, John Smith2", "1University A, 2University A")
	assert.Equal(t, []types.AuthorGroup{
		{Affiliation: "University A", Names: []string{"Jane Doe", "John Smith"}},
	}, got)
}

func TestParseAffiliations(t *testing.T) {
	got := ParseAffiliations("1University A, 2 University B, Independent, , 34Lab")
	assert.Equal(t, map[string]string{
		"1": "University A",
		"2": "University B",
		"3": "4Lab",
	}, got)
}
