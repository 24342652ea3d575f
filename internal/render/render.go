// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render appends one booklet section per session to a document:
// title, author block, abstract, body paragraphs and references.
package render

import (
	"strings"

	"github.com/pdiddy/booklet/internal/docx"
	"github.com/pdiddy/booklet/pkg/types"
)

const (
	titleLevel      = 1
	abstractLabel   = "Abstract: "
	referencesLabel = "References"

	bodySpaceBefore = 0
	bodySpaceAfter  = 6
)

// Session appends s to doc and returns doc.
func Session(doc *docx.Document, s types.Session) *docx.Document {
	// Level 1 is always within range.
	_, _ = doc.AddHeading(s.Title, titleLevel)

	for _, line := range strings.Split(s.AuthorBlock, "\n") {
		authorLine(doc, line)
	}

	p := doc.AddParagraph("", docx.StyleAbstract)
	p.AddRun(abstractLabel).SetBold(true)
	p.AddRun(s.Abstract).SetBold(false)

	for _, para := range s.Paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		doc.AddParagraph(para, docx.StyleBodyText).SetSpacing(bodySpaceBefore, bodySpaceAfter)
	}

	if len(s.References) > 0 {
		doc.AddParagraph(referencesLabel, docx.StyleReferencesLabel)
		for _, ref := range s.References {
			doc.AddParagraph(ref, docx.StyleReferenceEntry)
		}
	}
	return doc
}

// authorLine writes one "Names, *Affiliation*" line: the names as a plain
// run and ", Affiliation" as an italic run. Lines without the ", *"
// separator are written as plain text.
func authorLine(doc *docx.Document, line string) {
	if !strings.Contains(line, "*") {
		doc.AddParagraph(line, docx.StyleAuthor)
		return
	}
	parts := strings.Split(line, ", *")
	if len(parts) < 2 {
		doc.AddParagraph(line, docx.StyleAuthor)
		return
	}
	institution := strings.Trim(parts[1], "*")
	p := doc.AddParagraph(parts[0], docx.StyleAuthor)
	p.AddRun(", " + institution).SetItalic(true)
}
