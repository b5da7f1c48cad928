// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads the pages of a letters PDF as text. Backends differ
// in how they recover line positions: rows (ledongthuc/pdf), layout
// (tabula line detection), and pdftotext (poppler in a container).
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pdiddy/daybook/internal/container"
	"github.com/pdiddy/daybook/internal/segment"
	"github.com/pdiddy/daybook/pkg/types"
)

// ErrInputMissing is returned when the source PDF does not exist.
var ErrInputMissing = errors.New("input file not found")

// Page is the text of one source page.
type Page struct {
	// Number is the 1-based page index.
	Number int

	// Text is the page text with lines separated by "\n" and blocks by a
	// blank line.
	Text string

	// Lines holds positioned lines when the backend provides them.
	Lines []segment.Line

	// Warning records a page-level read problem. The page is still
	// returned, with whatever text could be read.
	Warning string
}

// Source reads every page of a PDF, in order.
type Source interface {
	// Name returns the backend name.
	Name() string

	// Pages returns one Page per source page, numbered from 1.
	Pages(ctx context.Context, path string) ([]Page, error)
}

// New returns the backend selected by cfg.Backend.
func New(cfg types.ExtractionConfig) (Source, error) {
	switch cfg.Backend {
	case types.BackendRows, "":
		return NewRowsSource(cfg.Policy.GapFactor), nil
	case types.BackendLayout:
		return NewLayoutSource(cfg.Policy.GapFactor), nil
	case types.BackendPdftotext:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewPdftotextSource(rt, cfg.PdftotextImage)
	default:
		return nil, fmt.Errorf("unknown backend %q: use rows, layout, or pdftotext", cfg.Backend)
	}
}

// CheckInput fails with ErrInputMissing when path does not exist, so a run
// aborts before any output is written.
func CheckInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputMissing, path)
		}
		return fmt.Errorf("checking input %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input %s is a directory", path)
	}
	return nil
}

// textFromLines renders positioned lines as page text, inserting a blank
// line wherever segment.Gap sees a block boundary.
func textFromLines(lines []segment.Line, gapFactor float64) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
			if segment.Gap(lines[i-1], l, gapFactor) {
				b.WriteByte('\n')
			}
		}
		b.WriteString(l.Text)
	}
	return b.String()
}
