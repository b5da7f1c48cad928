// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns the pages of a letters PDF into PageRecords and
// writes them as a JSON array.
package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/phuslu/log"

	"github.com/pdiddy/daybook/internal/segment"
	"github.com/pdiddy/daybook/internal/source"
	"github.com/pdiddy/daybook/pkg/types"
)

// Summary holds the outcome of one extraction run.
type Summary struct {
	Pages      int
	Emitted    int
	Skipped    int
	Fallback   int
	Empty      int
	Unreadable int

	// PageCountMismatch is set when the document's page count differs
	// from the expected count.
	PageCountMismatch bool
}

// Total returns the number of source pages processed.
func (s Summary) Total() int {
	return s.Pages
}

// HasWarnings reports whether any page needed a fallback or was empty,
// unreadable, or skipped, or the page count was off.
func (s Summary) HasWarnings() bool {
	return s.Fallback > 0 || s.Empty > 0 || s.Unreadable > 0 || s.Skipped > 0 || s.PageCountMismatch
}

// Build classifies every page, in order, exactly once. Anomalies are logged
// as warnings and listed on w; they never stop the run.
func Build(pages []source.Page, seg *segment.Segmenter, logger *log.Logger, w io.Writer) ([]types.PageRecord, Summary) {
	var summary Summary
	records := make([]types.PageRecord, 0, len(pages))
	skipEmpty := seg.Policy().EmptyPage == types.EmptyPageSkip

	for _, p := range pages {
		summary.Pages++

		if p.Warning != "" {
			summary.Unreadable++
			logger.Warn().Int("page", p.Number).Str("reason", p.Warning).Msg("page could not be fully read")
			fmt.Fprintf(w, "unreadable: page %d (%s)\n", p.Number, p.Warning)
		}

		c := seg.Page(p.Text, p.Lines)
		if c.Empty() {
			summary.Empty++
			if skipEmpty {
				summary.Skipped++
				logger.Warn().Int("page", p.Number).Msg("no text on page, skipped")
				fmt.Fprintf(w, "skipped: page %d (no text)\n", p.Number)
				continue
			}
			logger.Warn().Int("page", p.Number).Msg("no text on page, emitting empty record")
			fmt.Fprintf(w, "empty:   page %d\n", p.Number)
		} else if !c.DateFound {
			summary.Fallback++
			logger.Warn().Int("page", p.Number).Str("date", c.Date).Msg("no date block, using first block")
			fmt.Fprintf(w, "fallback: page %d (date %q)\n", p.Number, c.Date)
		}

		for _, d := range c.Discarded {
			logger.Debug().Int("page", p.Number).Str("block", d).Msg("discarded block")
		}

		records = append(records, types.PageRecord{
			PageNumber: p.Number,
			Date:       c.Date,
			Paragraphs: c.Paragraphs,
			Metadata:   c.Metadata,
		})
		summary.Emitted++
	}

	return records, summary
}

// Extract reads cfg.Input with src, builds records under cfg.Policy, and
// writes them to cfg.Output. The input is checked before anything is read so
// a missing file leaves no output behind.
func Extract(ctx context.Context, src source.Source, cfg types.ExtractionConfig, logger *log.Logger, w io.Writer) (Summary, error) {
	seg, err := segment.New(cfg.Policy)
	if err != nil {
		return Summary{}, err
	}
	if err := source.CheckInput(cfg.Input); err != nil {
		return Summary{}, err
	}

	logger.Info().Str("input", cfg.Input).Str("backend", src.Name()).Msg("reading pages")
	pages, err := src.Pages(ctx, cfg.Input)
	if err != nil {
		return Summary{}, fmt.Errorf("reading pages from %s: %w", cfg.Input, err)
	}

	mismatch := source.PageCountMismatch(len(pages), cfg.ExpectedPages)
	if mismatch {
		logger.Warn().Int("pages", len(pages)).Int("expected", cfg.ExpectedPages).Msg("unexpected page count")
		fmt.Fprintf(w, "warning: %d pages, expected %d\n", len(pages), cfg.ExpectedPages)
	}

	records, summary := Build(pages, seg, logger, w)
	summary.PageCountMismatch = mismatch

	if err := WriteJSON(cfg.Output, records); err != nil {
		return summary, err
	}
	logger.Info().Str("output", cfg.Output).Int("records", len(records)).Msg("wrote records")

	fmt.Fprintf(w, "\nExtract summary: %d pages, %d emitted, %d skipped, %d fallback, %d empty, %d unreadable\n",
		summary.Pages, summary.Emitted, summary.Skipped, summary.Fallback, summary.Empty, summary.Unreadable)
	return summary, nil
}
