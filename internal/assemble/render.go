// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Style holds page geometry and text styles. Lengths are in points.
type Style struct {
	PageSize     string
	MarginTop    float64
	MarginBottom float64
	MarginSide   float64
	Font         string

	TitleSize        float64
	TitleSpaceBefore float64
	TitleSpaceAfter  float64

	HeaderSize       float64
	HeaderColor      string
	HeaderSpaceAfter float64

	BodySize       float64
	BodyLeading    float64
	BodySpaceAfter float64

	// DateHeader renders the record's date as a header line.
	DateHeader bool
}

// DefaultStyle is an A4 page with 40pt top and bottom margins and one-inch
// sides, an 18pt bold centered title, 12pt bold grey headers and 10pt
// justified body text on 14pt leading.
func DefaultStyle() Style {
	return Style{
		PageSize:         "A4",
		MarginTop:        40,
		MarginBottom:     40,
		MarginSide:       72,
		Font:             "Helvetica",
		TitleSize:        18,
		TitleSpaceBefore: 20,
		TitleSpaceAfter:  26,
		HeaderSize:       12,
		HeaderColor:      "#444444",
		HeaderSpaceAfter: 8,
		BodySize:         10,
		BodyLeading:      14,
		BodySpaceAfter:   8,
		DateHeader:       true,
	}
}

// lineFactor converts a font size to a single-line cell height.
const lineFactor = 1.2

// Render draws sections into a new document. Each section begins with
// AddPage, so consecutive sections are separated by exactly one page break;
// long sections flow onto further pages. No sections yields one blank page.
func Render(ctx context.Context, sections []Section, style Style) (*fpdf.Fpdf, error) {
	r, g, b, err := parseHexColor(style.HeaderColor)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", style.PageSize, "")
	pdf.SetMargins(style.MarginSide, style.MarginTop, style.MarginSide)
	pdf.SetAutoPageBreak(true, style.MarginBottom)
	pdf.SetCreator("daybook", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, s := range sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf.AddPage()
		for _, e := range s.Elements {
			switch e.Kind {
			case KindTitle:
				pdf.SetFont(style.Font, "B", style.TitleSize)
				pdf.SetTextColor(0, 0, 0)
				pdf.Ln(style.TitleSpaceBefore)
				pdf.CellFormat(0, style.TitleSize*lineFactor, tr(e.Text), "", 1, "C", false, 0, "")
				pdf.Ln(style.TitleSpaceAfter)
			case KindHeader:
				pdf.SetFont(style.Font, "B", style.HeaderSize)
				pdf.SetTextColor(r, g, b)
				pdf.MultiCell(0, style.HeaderSize*lineFactor, tr(e.Text), "", "L", false)
				pdf.Ln(style.HeaderSpaceAfter)
			default:
				pdf.SetFont(style.Font, "", style.BodySize)
				pdf.SetTextColor(0, 0, 0)
				pdf.MultiCell(0, style.BodyLeading, tr(e.Text), "", "J", false)
				pdf.Ln(style.BodySpaceAfter)
			}
		}
	}

	if len(sections) == 0 {
		pdf.AddPage()
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}
	return pdf, nil
}

// parseHexColor reads "#rrggbb".
func parseHexColor(s string) (r, g, b int, err error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return r, g, b, nil
}
