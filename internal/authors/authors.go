// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authors groups submission authors under their affiliations and
// renders the "Name, Name, *Affiliation*" author block.
package authors

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/booklet/pkg/types"
)

// separator splits both the author and the affiliation lists.
const separator = ", "

// isMarker reports whether r is a superscript marker digit. Both ASCII
// digits and the Unicode superscript digits count.
func isMarker(r rune) bool {
	if unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹':
		return true
	}
	return false
}

// ParseAffiliations maps each marker to its affiliation name. Only the first
// character of a token is read as the marker; tokens that do not start with
// a marker digit are ignored.
func ParseAffiliations(affiliations string) map[string]string {
	m := make(map[string]string)
	for _, tok := range strings.Split(affiliations, separator) {
		r, size := utf8.DecodeRuneInString(tok)
		if size == 0 || !isMarker(r) {
			continue
		}
		m[tok[:size]] = strings.TrimSpace(tok[size:])
	}
	return m
}

// splitAuthor separates the marker digits of an author token from the name.
// All marker digits are concatenated into the key, so "Ann Lee12" yields the
// key "12".
func splitAuthor(tok string) (key, name string) {
	var k, n strings.Builder
	for _, r := range tok {
		if isMarker(r) {
			k.WriteRune(r)
		} else {
			n.WriteRune(r)
		}
	}
	return k.String(), strings.TrimSpace(n.String())
}

// Group assigns every author to an affiliation group. Groups appear in the
// order their affiliation is first seen. Unmarked authors go to the
// UnknownAffiliation group; a marker with no matching affiliation yields the
// empty affiliation name.
func Group(authors, affiliations string) []types.AuthorGroup {
	affs := ParseAffiliations(affiliations)

	var groups []types.AuthorGroup
	index := make(map[string]int)
	add := func(affiliation, name string) {
		i, ok := index[affiliation]
		if !ok {
			i = len(groups)
			index[affiliation] = i
			groups = append(groups, types.AuthorGroup{Affiliation: affiliation})
		}
		groups[i].Names = append(groups[i].Names, name)
	}

	for _, tok := range strings.Split(authors, separator) {
		key, name := splitAuthor(tok)
		if key == "" {
			add(types.UnknownAffiliation, strings.TrimSpace(tok))
			continue
		}
		add(affs[key], name)
	}
	return groups
}

// Format renders the author block: one "Name1, Name2, *Affiliation*" line per
// group, joined by newlines.
func Format(authors, affiliations string) string {
	groups := Group(authors, affiliations)
	lines := make([]string, len(groups))
	for i, g := range groups {
		lines[i] = FormatGroup(g)
	}
	return strings.Join(lines, "\n")
}

// FormatGroup renders a single author-block line.
func FormatGroup(g types.AuthorGroup) string {
	return strings.Join(g.Names, separator) + ", *" + g.Affiliation + "*"
}
