// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"
)

// Alignment is a paragraph justification value as written to w:jc.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Paragraph style IDs used by the booklet.
const (
	StyleNormal          = "Normal"
	StyleTitle           = "Title"
	StyleHeading1        = "Heading1"
	StyleConferenceTitle = "ConferenceTitle"
	StylePageNumber      = "PageNumber"
	StyleSessionTitle    = "SessionTitle"
	StyleAuthor          = "Author"
	StyleAbstract        = "Abstract"
	StyleBodyText        = "BodyText"
	StyleReferencesLabel = "ReferencesLabel"
	StyleReferenceEntry  = "ReferenceEntry"
)

const (
	bookletFont = "Times New Roman"
	bookletSize = 8
)

// Style is a named paragraph style. Sizes and spacing are in points,
// indents in inches. Nil spacing leaves the value to the base style.
type Style struct {
	ID            string    `yaml:"-"`
	Name          string    `yaml:"name"`
	BasedOn       string    `yaml:"based_on,omitempty"`
	Font          string    `yaml:"font,omitempty"`
	Size          float64   `yaml:"size,omitempty"`
	Bold          bool      `yaml:"bold,omitempty"`
	Italic        bool      `yaml:"italic,omitempty"`
	Alignment     Alignment `yaml:"alignment,omitempty"`
	SpaceBefore   *float64  `yaml:"space_before,omitempty"`
	SpaceAfter    *float64  `yaml:"space_after,omitempty"`
	LeftIndent    float64   `yaml:"left_indent,omitempty"`
	RightIndent   float64   `yaml:"right_indent,omitempty"`
	SingleSpacing bool      `yaml:"single_spacing,omitempty"`
	KeepNext      bool      `yaml:"keep_next,omitempty"`
	OutlineLevel  *int      `yaml:"outline_level,omitempty"`
}

// StyleSheet is an ordered set of paragraph styles. Order is preserved in
// styles.xml so saved documents are byte-stable.
type StyleSheet struct {
	styles []Style
}

// Pt returns a pointer to a point value, for the optional spacing fields.
func Pt(v float64) *float64 { return &v }

func level(v int) *int { return &v }

// DefaultStyleSheet returns the booklet stylesheet: every style is set in
// 8pt Times New Roman; titles and labels are bold and centered.
func DefaultStyleSheet() *StyleSheet {
	s := &StyleSheet{}
	s.Set(Style{ID: StyleNormal, Name: "Normal", Font: bookletFont, Size: bookletSize})
	s.Set(Style{
		ID: StyleTitle, Name: "Title", BasedOn: StyleNormal,
		Font: bookletFont, Size: 14, Bold: true, Alignment: AlignCenter,
		SpaceAfter: Pt(6), OutlineLevel: level(0),
	})
	s.Set(Style{
		ID: StyleHeading1, Name: "heading 1", BasedOn: StyleNormal,
		Font: bookletFont, Size: 10, Bold: true, Alignment: AlignCenter,
		SpaceBefore: Pt(12), SpaceAfter: Pt(4), KeepNext: true, OutlineLevel: level(0),
	})
	s.Set(Style{
		ID: StyleConferenceTitle, Name: "Conference Title", BasedOn: StyleNormal,
		Font: bookletFont, Size: bookletSize, Bold: true, Alignment: AlignCenter,
		SpaceAfter: Pt(0),
	})
	s.Set(Style{
		ID: StylePageNumber, Name: "Page Number", BasedOn: StyleNormal,
		Font: bookletFont, Size: bookletSize, Alignment: AlignCenter,
	})
	s.Set(Style{
		ID: StyleSessionTitle, Name: "Session Title", BasedOn: StyleNormal,
		Font: bookletFont, Size: bookletSize, Bold: true, Alignment: AlignCenter,
	})
	s.Set(Style{
		ID: StyleAuthor, Name: "Author", BasedOn: StyleNormal,
		Font: bookletFont, Size: bookletSize, Alignment: AlignCenter,
		SpaceAfter: Pt(0),
	})
	s.Set(Style{
		ID: StyleAbstract, Name: "Abstract", BasedOn: StyleNormal,
		Font: bookletFont, Size: bookletSize,
		SpaceBefore: Pt(8), LeftIndent: 0.5, RightIndent: 0.5, SingleSpacing: true,
	})
	s.Set(Style{
		ID: StyleBodyText, Name: "Body Text", BasedOn: StyleNormal,
		Font: bookletFont, Size: bookletSize,
		SpaceBefore: Pt(0), SpaceAfter: Pt(8),
	})
	s.Set(Style{
		ID: StyleReferencesLabel, Name: "References Label", BasedOn: StyleNormal,
		Font: bookletFont, Size: bookletSize, Bold: true, Alignment: AlignCenter,
	})
	s.Set(Style{
		ID: StyleReferenceEntry, Name: "Reference Entry", BasedOn: StyleNormal,
		Font: bookletFont, Size: bookletSize,
	})
	return s
}

// Set adds a style or replaces the style with the same ID in place.
func (s *StyleSheet) Set(st Style) {
	for i := range s.styles {
		if s.styles[i].ID == st.ID {
			s.styles[i] = st
			return
		}
	}
	s.styles = append(s.styles, st)
}

// Style returns the style with the given ID.
func (s *StyleSheet) Style(id string) (Style, bool) {
	for _, st := range s.styles {
		if st.ID == id {
			return st, true
		}
	}
	return Style{}, false
}

// Styles returns the styles in definition order.
func (s *StyleSheet) Styles() []Style {
	out := make([]Style, len(s.styles))
	copy(out, s.styles)
	return out
}

// stylesFile is the YAML layout of a stylesheet override file:
//
//	styles:
//	  Author:
//	    font: Georgia
//	    size: 9
type stylesFile struct {
	Styles map[string]yaml.Node `yaml:"styles"`
}

// LoadStyleSheet reads a YAML stylesheet and overlays it on the default
// stylesheet. Keys present in the file replace the matching style fields;
// unknown style IDs add new styles, in ID order.
func LoadStyleSheet(path string) (*StyleSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stylesheet: %w", err)
	}
	var f stylesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing stylesheet: %w", err)
	}

	sheet := DefaultStyleSheet()
	ids := make([]string, 0, len(f.Styles))
	for id := range f.Styles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		st, ok := sheet.Style(id)
		if !ok {
			st = Style{ID: id, Name: id, BasedOn: StyleNormal}
		}
		node := f.Styles[id]
		if err := node.Decode(&st); err != nil {
			return nil, fmt.Errorf("parsing style %s: %w", id, err)
		}
		st.ID = id
		sheet.Set(st)
	}
	return sheet, nil
}
