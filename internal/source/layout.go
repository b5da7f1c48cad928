// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/layout"
	"github.com/tsawler/tabula/reader"

	"github.com/pdiddy/daybook/internal/segment"
	"github.com/pdiddy/daybook/pkg/types"
)

// LayoutSource reads pages with tabula's line detector, which merges text
// fragments into lines and measures their bounding boxes.
type LayoutSource struct {
	gapFactor float64
}

// NewLayoutSource returns a layout backend.
func NewLayoutSource(gapFactor float64) *LayoutSource {
	return &LayoutSource{gapFactor: gapFactor}
}

func (s *LayoutSource) Name() string { return string(types.BackendLayout) }

// Pages opens the document once and runs line detection page by page.
func (s *LayoutSource) Pages(ctx context.Context, path string) ([]Page, error) {
	if err := CheckInput(path); err != nil {
		return nil, err
	}

	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer r.Close()

	total, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("counting pages in %s: %w", path, err)
	}

	pages := make([]Page, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := Page{Number: i}
		detected, err := tabula.FromReader(r).Pages(i).Lines()
		if err != nil {
			page.Warning = fmt.Sprintf("detecting lines: %v", err)
			pages = append(pages, page)
			continue
		}

		page.Lines = layoutLines(detected)
		page.Text = textFromLines(page.Lines, s.gapFactor)
		pages = append(pages, page)
	}
	return pages, nil
}

// layoutLines maps detected lines to page-top coordinates. The bounding box
// is in PDF space (origin bottom-left), so the top edge is Y+Height negated.
func layoutLines(detected []layout.Line) []segment.Line {
	lines := make([]segment.Line, 0, len(detected))
	for _, l := range detected {
		if l.Text == "" {
			continue
		}
		lines = append(lines, segment.Line{
			Text:   l.Text,
			Top:    -(l.BBox.Y + l.BBox.Height),
			Height: l.Height,
		})
	}
	return lines
}
