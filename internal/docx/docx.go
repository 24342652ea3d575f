// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx builds WordprocessingML (.docx) documents. A Document is an
// append-only list of styled paragraphs, each made of formatted runs, written
// out once as a ZIP package with a fixed stylesheet.
package docx

import (
	"fmt"
	"strings"
)

// Run is a span of text with uniform character formatting. A nil Bold or
// Italic inherits the paragraph style; a non-nil value overrides it.
type Run struct {
	Text   string
	Bold   *bool
	Italic *bool
}

// SetBold sets the run's bold override.
func (r *Run) SetBold(v bool) *Run {
	r.Bold = &v
	return r
}

// SetItalic sets the run's italic override.
func (r *Run) SetItalic(v bool) *Run {
	r.Italic = &v
	return r
}

// Paragraph is a styled block of runs. SpaceBefore and SpaceAfter, in
// points, override the style's spacing when set.
type Paragraph struct {
	Style       string
	Runs        []*Run
	SpaceBefore *float64
	SpaceAfter  *float64
}

// AddRun appends a run with the given text.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.Runs = append(p.Runs, r)
	return r
}

// SetSpacing overrides the paragraph spacing, in points.
func (p *Paragraph) SetSpacing(before, after float64) *Paragraph {
	p.SpaceBefore = Pt(before)
	p.SpaceAfter = Pt(after)
	return p
}

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Document accumulates paragraphs for a single output file.
type Document struct {
	sheet      *StyleSheet
	paragraphs []*Paragraph
}

// New creates an empty document using sheet. A nil sheet selects
// DefaultStyleSheet.
func New(sheet *StyleSheet) *Document {
	if sheet == nil {
		sheet = DefaultStyleSheet()
	}
	return &Document{sheet: sheet}
}

// StyleSheet returns the document's stylesheet.
func (d *Document) StyleSheet() *StyleSheet {
	return d.sheet
}

// AddParagraph appends a paragraph in the given style. A non-empty text
// becomes the paragraph's first run.
func (d *Document) AddParagraph(text, style string) *Paragraph {
	p := &Paragraph{Style: style}
	if text != "" {
		p.AddRun(text)
	}
	d.paragraphs = append(d.paragraphs, p)
	return p
}

// AddHeading appends a heading paragraph. Level 0 uses the Title style,
// levels 1 to 9 use HeadingN.
func (d *Document) AddHeading(text string, lvl int) (*Paragraph, error) {
	if lvl < 0 || lvl > 9 {
		return nil, fmt.Errorf("heading level %d out of range 0-9", lvl)
	}
	style := StyleTitle
	if lvl > 0 {
		style = fmt.Sprintf("Heading%d", lvl)
	}
	return d.AddParagraph(text, style), nil
}

// Paragraphs returns the document's paragraphs in order.
func (d *Document) Paragraphs() []*Paragraph {
	out := make([]*Paragraph, len(d.paragraphs))
	copy(out, d.paragraphs)
	return out
}

// Len returns the number of paragraphs.
func (d *Document) Len() int {
	return len(d.paragraphs)
}
