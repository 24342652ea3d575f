// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"
)

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// WordprocessingML element types. Prefixed names are written literally; the
// namespace declarations sit on the root elements.

type xVal struct {
	Val string `xml:"w:val,attr"`
}

type xOnOff struct {
	Val string `xml:"w:val,attr,omitempty"`
}

type xSpacing struct {
	Before   string `xml:"w:before,attr,omitempty"`
	After    string `xml:"w:after,attr,omitempty"`
	Line     string `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

type xInd struct {
	Left  string `xml:"w:left,attr,omitempty"`
	Right string `xml:"w:right,attr,omitempty"`
}

type xFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

type xPPr struct {
	PStyle     *xVal     `xml:"w:pStyle,omitempty"`
	KeepNext   *xOnOff   `xml:"w:keepNext,omitempty"`
	Spacing    *xSpacing `xml:"w:spacing,omitempty"`
	Ind        *xInd     `xml:"w:ind,omitempty"`
	Jc         *xVal     `xml:"w:jc,omitempty"`
	OutlineLvl *xVal     `xml:"w:outlineLvl,omitempty"`
}

type xRPr struct {
	RFonts *xFonts `xml:"w:rFonts,omitempty"`
	B      *xOnOff `xml:"w:b,omitempty"`
	I      *xOnOff `xml:"w:i,omitempty"`
	Sz     *xVal   `xml:"w:sz,omitempty"`
	SzCs   *xVal   `xml:"w:szCs,omitempty"`
}

type xText struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr"`
	Value   string   `xml:",chardata"`
}

type xBreak struct {
	XMLName xml.Name `xml:"w:br"`
}

type xTab struct {
	XMLName xml.Name `xml:"w:tab"`
}

type xRun struct {
	XMLName xml.Name `xml:"w:r"`
	RPr     *xRPr    `xml:"w:rPr,omitempty"`
	Content []any
}

type xParagraph struct {
	XMLName xml.Name `xml:"w:p"`
	PPr     *xPPr    `xml:"w:pPr,omitempty"`
	Runs    []xRun
}

type xPageSize struct {
	W string `xml:"w:w,attr"`
	H string `xml:"w:h,attr"`
}

type xPageMargin struct {
	Top    string `xml:"w:top,attr"`
	Right  string `xml:"w:right,attr"`
	Bottom string `xml:"w:bottom,attr"`
	Left   string `xml:"w:left,attr"`
	Header string `xml:"w:header,attr"`
	Footer string `xml:"w:footer,attr"`
	Gutter string `xml:"w:gutter,attr"`
}

type xSectPr struct {
	PgSz  xPageSize   `xml:"w:pgSz"`
	PgMar xPageMargin `xml:"w:pgMar"`
}

type xBody struct {
	Paragraphs []xParagraph
	SectPr     xSectPr `xml:"w:sectPr"`
}

type xDocument struct {
	XMLName xml.Name `xml:"w:document"`
	W       string   `xml:"xmlns:w,attr"`
	R       string   `xml:"xmlns:r,attr"`
	Body    xBody    `xml:"w:body"`
}

type xStyle struct {
	XMLName xml.Name `xml:"w:style"`
	Type    string   `xml:"w:type,attr"`
	Default string   `xml:"w:default,attr,omitempty"`
	ID      string   `xml:"w:styleId,attr"`
	Name    xVal     `xml:"w:name"`
	BasedOn *xVal    `xml:"w:basedOn,omitempty"`
	QFormat *xOnOff  `xml:"w:qFormat,omitempty"`
	PPr     *xPPr    `xml:"w:pPr,omitempty"`
	RPr     *xRPr    `xml:"w:rPr,omitempty"`
}

type xStyles struct {
	XMLName xml.Name `xml:"w:styles"`
	W       string   `xml:"xmlns:w,attr"`
	Styles  []xStyle
}

// US Letter with one-inch margins, in twips.
var letterSection = xSectPr{
	PgSz: xPageSize{W: "12240", H: "15840"},
	PgMar: xPageMargin{
		Top: "1440", Right: "1440", Bottom: "1440", Left: "1440",
		Header: "720", Footer: "720", Gutter: "0",
	},
}

func twips(pt float64) string {
	return strconv.Itoa(int(math.Round(pt * 20)))
}

func inchTwips(in float64) string {
	return strconv.Itoa(int(math.Round(in * 1440)))
}

func halfPoints(pt float64) string {
	return strconv.Itoa(int(math.Round(pt * 2)))
}

func onOff(v bool) *xOnOff {
	if v {
		return &xOnOff{}
	}
	return &xOnOff{Val: "0"}
}

// runContent converts run text into w:t elements, turning line breaks into
// w:br and tabs into w:tab.
func runContent(text string) []any {
	var (
		out []any
		buf strings.Builder
	)
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, xText{Space: "preserve", Value: buf.String()})
			buf.Reset()
		}
	}
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			flush()
			out = append(out, xBreak{})
		case '\n':
			flush()
			out = append(out, xBreak{})
		case '\t':
			flush()
			out = append(out, xTab{})
		default:
			buf.WriteByte(c)
		}
	}
	flush()
	return out
}

func paragraphXML(p *Paragraph) xParagraph {
	xp := xParagraph{}
	ppr := &xPPr{}
	if p.Style != "" {
		ppr.PStyle = &xVal{Val: p.Style}
	}
	if p.SpaceBefore != nil || p.SpaceAfter != nil {
		sp := &xSpacing{}
		if p.SpaceBefore != nil {
			sp.Before = twips(*p.SpaceBefore)
		}
		if p.SpaceAfter != nil {
			sp.After = twips(*p.SpaceAfter)
		}
		ppr.Spacing = sp
	}
	if ppr.PStyle != nil || ppr.Spacing != nil {
		xp.PPr = ppr
	}

	for _, r := range p.Runs {
		xr := xRun{Content: runContent(r.Text)}
		if r.Bold != nil || r.Italic != nil {
			xr.RPr = &xRPr{}
			if r.Bold != nil {
				xr.RPr.B = onOff(*r.Bold)
			}
			if r.Italic != nil {
				xr.RPr.I = onOff(*r.Italic)
			}
		}
		xp.Runs = append(xp.Runs, xr)
	}
	return xp
}

func styleXML(st Style) xStyle {
	xs := xStyle{
		Type:    "paragraph",
		ID:      st.ID,
		Name:    xVal{Val: st.Name},
		QFormat: &xOnOff{},
	}
	if st.ID == StyleNormal {
		xs.Default = "1"
	}
	if st.BasedOn != "" {
		xs.BasedOn = &xVal{Val: st.BasedOn}
	}

	ppr := &xPPr{}
	if st.KeepNext {
		ppr.KeepNext = &xOnOff{}
	}
	if st.SpaceBefore != nil || st.SpaceAfter != nil || st.SingleSpacing {
		sp := &xSpacing{}
		if st.SpaceBefore != nil {
			sp.Before = twips(*st.SpaceBefore)
		}
		if st.SpaceAfter != nil {
			sp.After = twips(*st.SpaceAfter)
		}
		if st.SingleSpacing {
			sp.Line = "240"
			sp.LineRule = "auto"
		}
		ppr.Spacing = sp
	}
	if st.LeftIndent != 0 || st.RightIndent != 0 {
		ind := &xInd{}
		if st.LeftIndent != 0 {
			ind.Left = inchTwips(st.LeftIndent)
		}
		if st.RightIndent != 0 {
			ind.Right = inchTwips(st.RightIndent)
		}
		ppr.Ind = ind
	}
	if st.Alignment != "" {
		ppr.Jc = &xVal{Val: string(st.Alignment)}
	}
	if st.OutlineLevel != nil {
		ppr.OutlineLvl = &xVal{Val: strconv.Itoa(*st.OutlineLevel)}
	}
	if *ppr != (xPPr{}) {
		xs.PPr = ppr
	}

	rpr := &xRPr{}
	if st.Font != "" {
		rpr.RFonts = &xFonts{ASCII: st.Font, HAnsi: st.Font, CS: st.Font}
	}
	if st.Bold {
		rpr.B = &xOnOff{}
	}
	if st.Italic {
		rpr.I = &xOnOff{}
	}
	if st.Size > 0 {
		rpr.Sz = &xVal{Val: halfPoints(st.Size)}
		rpr.SzCs = &xVal{Val: halfPoints(st.Size)}
	}
	if *rpr != (xRPr{}) {
		xs.RPr = rpr
	}
	return xs
}

func marshalPart(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), data...), nil
}

func (d *Document) documentXML() ([]byte, error) {
	doc := xDocument{W: nsW, R: nsR, Body: xBody{SectPr: letterSection}}
	doc.Body.Paragraphs = make([]xParagraph, len(d.paragraphs))
	for i, p := range d.paragraphs {
		doc.Body.Paragraphs[i] = paragraphXML(p)
	}
	return marshalPart(doc)
}

func (d *Document) stylesXML() ([]byte, error) {
	styles := xStyles{W: nsW}
	for _, st := range d.sheet.Styles() {
		styles.Styles = append(styles.Styles, styleXML(st))
	}
	return marshalPart(styles)
}
