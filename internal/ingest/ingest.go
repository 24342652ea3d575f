// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest reads conference submissions from a CSV table and
// normalizes their free-text fields.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/booklet/pkg/types"
)

// ErrInputNotFound reports that the submissions file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// MissingColumnError reports a required column absent from the header row.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column '%s'", e.Column)
}

const utf8BOM = "\ufeff"

// numberPrefix matches a leading reference number such as "12. ".
var numberPrefix = regexp.MustCompile(`^\s*\d+\. `)

// Load reads submissions from the CSV file at path. It returns an error
// wrapping ErrInputNotFound when the file does not exist and a
// *MissingColumnError when a required column is absent.
func Load(path string) ([]types.Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening %s: %w", path, ErrInputNotFound)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads submissions from CSV data. The first row is the header;
// columns are matched by exact name and extra columns are ignored. Missing
// trailing cells read as empty strings.
func Parse(r io.Reader) ([]types.Submission, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("parsing CSV: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("parsing CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, name := range types.RequiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &MissingColumnError{Column: name}
		}
	}

	var subs []types.Submission
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing CSV: %w", err)
		}
		cell := func(name string) string {
			i := cols[name]
			if i < len(row) {
				return row[i]
			}
			return ""
		}
		subs = append(subs, types.Submission{
			Title:        cell(types.ColumnTitle),
			Authors:      cell(types.ColumnAuthors),
			Affiliations: cell(types.ColumnAffiliations),
			Abstract:     cell(types.ColumnAbstract),
			Proposal:     cell(types.ColumnProposal),
			References:   cell(types.ColumnReferences),
		})
	}
	return subs, nil
}

// SortByTitle orders submissions by title, byte-wise. Submissions with equal
// titles keep their input order.
func SortByTitle(subs []types.Submission) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].Title < subs[j].Title
	})
}

// SplitProposal removes carriage returns and splits the proposal into
// paragraphs on blank lines. Paragraphs are returned untrimmed.
func SplitProposal(proposal string) []string {
	return strings.Split(strings.ReplaceAll(proposal, "\r", ""), "\n\n")
}

// SplitReferences splits the reference list into entries, one per line,
// dropping a leading "N. " number and empty lines.
func SplitReferences(references string) []string {
	var refs []string
	for _, line := range strings.Split(references, "\n") {
		ref := strings.TrimSpace(numberPrefix.ReplaceAllString(line, ""))
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}
