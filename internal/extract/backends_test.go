// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/daybook/internal/assemble"
	"github.com/pdiddy/daybook/internal/logging"
	"github.com/pdiddy/daybook/internal/source"
	"github.com/pdiddy/daybook/pkg/types"
)

// scenarioLines is the scenario page as printed lines; "" is a paragraph gap.
var scenarioLines = []string{
	"January",
	"January 1st",
	"Body line one.",
	"",
	"Body line two continues",
	"here.",
	"",
	"(Extract from Letter 1, to Person X)",
}

// writeScenarioPDF renders each page's lines with fpdf, one cell per line.
func writeScenarioPDF(t *testing.T, pages ...[]string) string {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, lines := range pages {
		doc.AddPage()
		for _, l := range lines {
			if l == "" {
				doc.Ln(10)
				continue
			}
			doc.CellFormat(0, 6, l, "", 1, "L", false, 0, "")
		}
	}
	path := filepath.Join(t.TempDir(), "Letters.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

// positionedBackends are the sources that report line positions.
func positionedBackends() map[string]source.Source {
	return map[string]source.Source{
		"rows":   source.NewRowsSource(types.DefaultGapFactor),
		"layout": source.NewLayoutSource(types.DefaultGapFactor),
	}
}

func TestBuild_GeneratedPDFPerBackend(t *testing.T) {
	path := writeScenarioPDF(t, scenarioLines, []string{"January 2nd", "", "Short one."})
	want := []types.PageRecord{
		{
			PageNumber: 1,
			Date:       "January 1st",
			Paragraphs: []string{"Body line one.", "Body line two continues here."},
			Metadata:   "(Extract from Letter 1, to Person X)",
		},
		{PageNumber: 2, Date: "January 2nd", Paragraphs: []string{}, Metadata: "Short one."},
	}

	boundaries := []types.BoundaryRule{types.BoundaryBlankLine, types.BoundaryVerticalGap}
	for name, src := range positionedBackends() {
		for _, boundary := range boundaries {
			t.Run(name+"/"+string(boundary), func(t *testing.T) {
				pages, err := src.Pages(context.Background(), path)
				require.NoError(t, err)
				require.Len(t, pages, 2)
				assert.Greater(t, len(pages[0].Lines), 1)

				seg := newSegmenter(t, func(p *types.PolicyConfig) { p.BoundaryRule = boundary })
				c := seg.Page(pages[0].Text, pages[0].Lines)
				assert.True(t, c.DateFound)
				assert.Equal(t, "January 1st", c.Date)

				var w bytes.Buffer
				records, summary := Build(pages, seg, logging.Discard(), &w)
				assert.Equal(t, want, records)
				assert.Zero(t, summary.Fallback)
				assert.False(t, summary.HasWarnings(), w.String())
			})
		}
	}
}

func TestBuild_AssembledPDFPerBackend(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "records.json")
	records := []types.PageRecord{
		{PageNumber: 1, Date: "January 1st", Paragraphs: []string{"Body line one."}, Metadata: "(Letter 1)"},
		{PageNumber: 2, Date: "January 2nd", Paragraphs: []string{"Short one."}},
	}
	require.NoError(t, WriteJSON(input, records))

	cfg := types.DefaultConfig().Assembly
	cfg.Input = input
	cfg.Output = filepath.Join(dir, "assembled.pdf")
	_, err := assemble.Assemble(context.Background(), cfg, assemble.DefaultStyle(), logging.Discard(), &bytes.Buffer{})
	require.NoError(t, err)

	for name, src := range positionedBackends() {
		t.Run(name, func(t *testing.T) {
			pages, err := src.Pages(context.Background(), cfg.Output)
			require.NoError(t, err)
			require.Len(t, pages, 2)

			got, summary := Build(pages, newSegmenter(t, nil), logging.Discard(), &bytes.Buffer{})
			require.Len(t, got, 2)
			assert.Equal(t, "January 1st", got[0].Date)
			assert.Equal(t, "January 2nd", got[1].Date)
			assert.Zero(t, summary.Fallback)
		})
	}
}
