// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble renders a JSON array of PageRecords into a paginated PDF,
// one section per record.
package assemble

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/phuslu/log"

	"github.com/pdiddy/daybook/internal/fileutil"
	"github.com/pdiddy/daybook/pkg/types"
)

// Summary holds the outcome of one assembly run.
type Summary struct {
	Records    int
	Paragraphs int
	Pages      int

	// Empty counts records rendered as a bare title.
	Empty int

	// OutOfOrder counts records whose page number is not greater than the
	// one before.
	OutOfOrder int

	// Blank counts whitespace-only paragraphs, which Layout leaves out.
	Blank int
}

// HasWarnings reports whether any record was empty, out of order, or held
// blank paragraphs.
func (s Summary) HasWarnings() bool {
	return s.Empty > 0 || s.OutOfOrder > 0 || s.Blank > 0
}

// Assemble reads cfg.Input, renders it with style, and writes cfg.Output.
// Nothing is written unless every record decodes and the document renders.
func Assemble(ctx context.Context, cfg types.AssemblyConfig, style Style, logger *log.Logger, w io.Writer) (Summary, error) {
	records, err := ReadRecords(cfg.Input)
	if err != nil {
		return Summary{}, err
	}
	logger.Info().Str("input", cfg.Input).Int("records", len(records)).Msg("read records")

	summary := Summary{Records: len(records)}
	prev := 0
	for _, r := range records {
		summary.Paragraphs += len(r.Paragraphs)
		if r.IsEmpty() {
			summary.Empty++
			logger.Warn().Int("page", r.PageNumber).Msg("record has no text")
			fmt.Fprintf(w, "empty:   page %d\n", r.PageNumber)
		}
		if r.PageNumber <= prev {
			summary.OutOfOrder++
			logger.Warn().Int("page", r.PageNumber).Int("previous", prev).Msg("page number out of order")
			fmt.Fprintf(w, "order:   page %d after %d\n", r.PageNumber, prev)
		}
		for i, p := range r.Paragraphs {
			if strings.TrimSpace(p) == "" {
				summary.Blank++
				logger.Warn().Int("page", r.PageNumber).Int("paragraph", i).Msg("blank paragraph dropped")
				fmt.Fprintf(w, "blank:   page %d paragraph %d\n", r.PageNumber, i)
			}
		}
		prev = r.PageNumber
	}

	style.DateHeader = cfg.DateHeader
	pdf, err := Render(ctx, Layout(records, style), style)
	if err != nil {
		return summary, err
	}
	summary.Pages = pdf.PageCount()

	if err := fileutil.WriteAtomic(cfg.Output, pdf.Output); err != nil {
		return summary, err
	}
	logger.Info().Str("output", cfg.Output).Int("pages", summary.Pages).Msg("wrote document")

	fmt.Fprintf(w, "\nAssemble summary: %d records, %d paragraphs, %d pages\n",
		summary.Records, summary.Paragraphs, summary.Pages)
	return summary, nil
}
