// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/daybook/internal/segment"
	"github.com/pdiddy/daybook/pkg/types"
)

// wordGapRatio is the horizontal gap, as a fraction of font size, above
// which two glyph runs on a row are separated by a space.
const wordGapRatio = 0.15

// baselineRatio is the vertical distance, as a fraction of font size,
// within which two glyph runs share a baseline.
const baselineRatio = 0.4

// RowsSource reads pages with github.com/ledongthuc/pdf, grouping glyphs
// into rows by baseline.
type RowsSource struct {
	gapFactor float64
}

// NewRowsSource returns a rows backend. gapFactor decides where blank lines
// are inserted between rows.
func NewRowsSource(gapFactor float64) *RowsSource {
	return &RowsSource{gapFactor: gapFactor}
}

func (s *RowsSource) Name() string { return string(types.BackendRows) }

// Pages reads every page. A page whose content cannot be decoded is returned
// empty with a Warning.
func (s *RowsSource) Pages(ctx context.Context, path string) ([]Page, error) {
	if err := CheckInput(path); err != nil {
		return nil, err
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]Page, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := Page{Number: i}
		p := r.Page(i)
		if p.V.IsNull() {
			page.Warning = "page object missing"
			pages = append(pages, page)
			continue
		}

		texts, err := pageTexts(p)
		if err != nil {
			page.Warning = fmt.Sprintf("reading content: %v", err)
			pages = append(pages, page)
			continue
		}

		page.Lines = rowLines(texts)
		page.Text = textFromLines(page.Lines, s.gapFactor)
		pages = append(pages, page)
	}
	return pages, nil
}

// pageTexts returns the positioned glyph runs of a page. The content
// interpreter panics on malformed streams; that is reported as an error.
func pageTexts(p pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()
	return p.Content().Text, nil
}

// rowLines groups glyph runs into top-down lines. Runs whose baselines lie
// within baselineRatio of the font size join one row, ordered by X. PDF y
// grows upward, so a higher baseline is nearer the top of the page.
func rowLines(texts []pdf.Text) []segment.Line {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y > sorted[j].Y
	})

	var rows [][]pdf.Text
	var baseline float64
	for _, t := range sorted {
		n := len(rows)
		if n > 0 && baseline-t.Y <= baselineRatio*max(t.FontSize, 1) {
			rows[n-1] = append(rows[n-1], t)
			continue
		}
		rows = append(rows, []pdf.Text{t})
		baseline = t.Y
	}

	lines := make([]segment.Line, 0, len(rows))
	for _, row := range rows {
		top := row[0].Y
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].X < row[j].X
		})
		text, height := rowText(row)
		if text == "" {
			continue
		}
		lines = append(lines, segment.Line{
			Text:   text,
			Top:    -top,
			Height: height,
		})
	}
	return lines
}

// rowText joins a row's glyph runs left to right. An empty run or a
// horizontal gap wider than wordGapRatio of the font size marks a word
// boundary. Fonts without a Widths array report zero widths; after such a
// run only literal spaces separate words. It also returns the row's largest
// font size.
func rowText(runs []pdf.Text) (string, float64) {
	var (
		b         strings.Builder
		height    float64
		prevEnd   float64
		prevWidth bool
		boundary  bool
	)
	for _, t := range runs {
		height = max(height, t.FontSize)
		if t.S == "" {
			boundary = true
			continue
		}
		gap := prevWidth && t.X-prevEnd > wordGapRatio*t.FontSize
		if b.Len() > 0 && (boundary || gap) {
			if !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(t.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
		prevWidth = t.W > 0
		boundary = false
	}
	return strings.TrimSpace(b.String()), height
}
