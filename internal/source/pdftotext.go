// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/daybook/internal/container"
	"github.com/pdiddy/daybook/pkg/types"
)

// pdftotextCmd reads the PDF on stdin and writes text to stdout. Pages are
// separated by form feeds; paragraphs by blank lines.
var pdftotextCmd = []string{"pdftotext", "-enc", "UTF-8", "-", "-"}

// PdftotextSource runs poppler's pdftotext inside a container. It yields
// text only, without line positions.
type PdftotextSource struct {
	runtime container.Runtime
	image   string
}

// NewPdftotextSource verifies that image exists in the runtime before
// returning.
func NewPdftotextSource(rt container.Runtime, image string) (*PdftotextSource, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextSource{runtime: rt, image: image}, nil
}

func (s *PdftotextSource) Name() string { return string(types.BackendPdftotext) }

func (s *PdftotextSource) Pages(ctx context.Context, path string) ([]Page, error) {
	if err := CheckInput(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := s.runtime.Run(ctx, s.image, pdftotextCmd, f, &out); err != nil {
		return nil, fmt.Errorf("extracting %s with pdftotext: %w", path, err)
	}
	return splitPages(out.String()), nil
}

// splitPages splits pdftotext output on form feeds. pdftotext ends the
// last page with a form feed too, so a trailing empty chunk is dropped.
func splitPages(text string) []Page {
	chunks := strings.Split(text, "\f")
	if n := len(chunks); n > 1 && strings.TrimSpace(chunks[n-1]) == "" {
		chunks = chunks[:n-1]
	}

	pages := make([]Page, len(chunks))
	for i, c := range chunks {
		pages[i] = Page{Number: i + 1, Text: c}
	}
	return pages
}
