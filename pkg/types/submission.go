// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Column names the input table must carry. The order matches the order in
// which missing columns are reported.
const (
	ColumnTitle        = "Submission title"
	ColumnAuthors      = "Submission authors"
	ColumnAffiliations = "Affiliations"
	ColumnAbstract     = "Abstract"
	ColumnProposal     = "Proposal"
	ColumnReferences   = "References"
)

// RequiredColumns lists every column a submissions table must provide.
var RequiredColumns = []string{
	ColumnTitle,
	ColumnAuthors,
	ColumnAffiliations,
	ColumnAbstract,
	ColumnProposal,
	ColumnReferences,
}

// UnknownAffiliation is the group name for authors that carry no
// superscript marker.
const UnknownAffiliation = "Unknown"

// Submission is one conference-submission row, verbatim from the input table.
type Submission struct {
	// Title is the submission title; booklet sections are ordered by it.
	Title string `json:"title" yaml:"title"`

	// Authors is the comma-separated author list, each name tagged with
	// its affiliation marker (e.g. "Jane Doe1, John Smith2").
	Authors string `json:"authors" yaml:"authors"`

	// Affiliations is the comma-separated affiliation list, each entry
	// prefixed with its marker (e.g. "1University A, 2University B").
	Affiliations string `json:"affiliations" yaml:"affiliations"`

	// Abstract is the submission abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Proposal is the body text, paragraphs separated by blank lines.
	Proposal string `json:"proposal" yaml:"proposal"`

	// References is the newline-separated reference list, optionally numbered.
	References string `json:"references" yaml:"references"`
}

// AuthorGroup holds the authors that share one affiliation.
type AuthorGroup struct {
	// Affiliation is the institution name. It is UnknownAffiliation for
	// unmarked authors and empty when a marker has no matching affiliation.
	Affiliation string `json:"affiliation" yaml:"affiliation"`

	// Names lists the authors in input order.
	Names []string `json:"names" yaml:"names"`
}

// Session is a normalized submission, ready to be rendered as one booklet
// section.
type Session struct {
	Title string `json:"title" yaml:"title"`

	// AuthorBlock is the formatted author text: one "Names, *Affiliation*"
	// line per affiliation group.
	AuthorBlock string `json:"author_block" yaml:"author_block"`

	Abstract string `json:"abstract" yaml:"abstract"`

	// Paragraphs holds the proposal split on blank lines. Entries are not
	// trimmed; the renderer drops blank ones.
	Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`

	// References holds the reference entries with numbering removed.
	References []string `json:"references" yaml:"references"`
}
