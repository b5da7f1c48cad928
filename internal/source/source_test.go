// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/daybook/internal/segment"
	"github.com/pdiddy/daybook/pkg/types"
)

// fakeRuntime implements container.Runtime with canned output.
type fakeRuntime struct {
	imageErr error
	output   string
	runErr   error
	gotImage string
	gotCmd   []string
}

func (f *fakeRuntime) Name() string    { return "fake" }
func (f *fakeRuntime) Available() bool { return true }

func (f *fakeRuntime) ImageExists(string) error { return f.imageErr }

func (f *fakeRuntime) Run(_ context.Context, image string, command []string, stdin io.Reader, stdout io.Writer) error {
	f.gotImage = image
	f.gotCmd = command
	if f.runErr != nil {
		return f.runErr
	}
	if _, err := io.ReadAll(stdin); err != nil {
		return err
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

// writeLettersPDF renders one letter per page with fpdf and returns its path.
func writeLettersPDF(t *testing.T, pages [][]string) string {
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
	path := filepath.Join(t.TempDir(), "letters.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

func TestCheckInput(t *testing.T) {
	err := CheckInput(filepath.Join(t.TempDir(), "Letters.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputMissing))

	err = CheckInput(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestNew(t *testing.T) {
	cfg := types.DefaultConfig().Extraction

	src, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "rows", src.Name())

	cfg.Backend = types.BackendLayout
	src, err = New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "layout", src.Name())

	cfg.Backend = "ocr"
	_, err = New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestTextFromLines(t *testing.T) {
	lines := []segment.Line{
		{Text: "January 1st", Top: 0, Height: 12},
		{Text: "Body line one.", Top: 30, Height: 10},
		{Text: "continues", Top: 42, Height: 10},
		{Text: "(Note)", Top: 80, Height: 10},
	}
	got := textFromLines(lines, 1.5)
	assert.Equal(t, "January 1st\n\nBody line one.\ncontinues\n\n(Note)", got)
	assert.Equal(t, "", textFromLines(nil, 1.5))
}

func TestRowText(t *testing.T) {
	runs := []pdf.Text{
		{S: "Body", X: 10, W: 20, FontSize: 10},
		{S: "line", X: 33, W: 15, FontSize: 10},
		{S: "", X: 48, W: 0, FontSize: 10},
		{S: "one.", X: 50, W: 16, FontSize: 11},
		{S: "s", X: 66, W: 4, FontSize: 10},
	}
	text, height := rowText(runs)
	assert.Equal(t, "Body line one.s", text)
	assert.Equal(t, 11.0, height)

	// Zero widths: glyph positions alone never split a word.
	runs = []pdf.Text{
		{S: "K", X: 10, FontSize: 12},
		{S: "e", X: 18, FontSize: 12},
		{S: " ", X: 24.7, FontSize: 12},
		{S: "m", X: 28, FontSize: 12},
		{S: "e", X: 38, FontSize: 12},
	}
	text, _ = rowText(runs)
	assert.Equal(t, "Ke me", text)
}

func TestRowLines_GroupsByBaseline(t *testing.T) {
	texts := []pdf.Text{
		{S: "o", X: 22, Y: 600, W: 6, FontSize: 10},
		{S: "f", X: 10, Y: 700, W: 4, FontSize: 12},
		{S: "s", X: 10, Y: 600.5, W: 6, FontSize: 10},
		{S: "e", X: 16, Y: 599.8, W: 6, FontSize: 10},
		{S: "i", X: 14, Y: 700, W: 3, FontSize: 12},
		{S: " ", X: 10, Y: 500, W: 3, FontSize: 10},
	}
	lines := rowLines(texts)
	require.Len(t, lines, 2)
	assert.Equal(t, "fi", lines[0].Text)
	assert.Equal(t, "seo", lines[1].Text)
	assert.Less(t, lines[0].Top, lines[1].Top)
	assert.Equal(t, 12.0, lines[0].Height)
	assert.Empty(t, rowLines(nil))
}

func TestSplitPages(t *testing.T) {
	pages := splitPages("January 1st\n\nBody.\n\fJanuary 2nd\n\fFebruary 1st\n\f")
	require.Len(t, pages, 3)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, "January 1st\n\nBody.\n", pages[0].Text)
	assert.Equal(t, 3, pages[2].Number)

	// A blank page in the middle keeps its slot.
	pages = splitPages("a\f\fc\f")
	require.Len(t, pages, 3)
	assert.Equal(t, "", pages[1].Text)
}

func TestPdftotextSource(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "Letters.pdf")
	writeFile(t, pdfPath, "%PDF-1.4 fake")

	rt := &fakeRuntime{output: "January 1st\n\nBody.\f(empty)\f"}
	src, err := NewPdftotextSource(rt, "poppler:test")
	require.NoError(t, err)
	assert.Equal(t, "pdftotext", src.Name())

	pages, err := src.Pages(context.Background(), pdfPath)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "poppler:test", rt.gotImage)
	assert.Equal(t, "pdftotext", rt.gotCmd[0])

	rt.runErr = errors.New("exit status 1")
	_, err = src.Pages(context.Background(), pdfPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext")

	_, err = src.Pages(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.True(t, errors.Is(err, ErrInputMissing))
}

func TestNewPdftotextSource_MissingImage(t *testing.T) {
	_, err := NewPdftotextSource(&fakeRuntime{imageErr: errors.New("no such image")}, "poppler:test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext image not available")
}

func TestRowsSource_ReadsGeneratedPDF(t *testing.T) {
	path := writeLettersPDF(t, [][]string{
		{"January", "January 1st", "", "Keep your heart in peace.", "", "(Letter 1)"},
		{},
		{"January 3rd", "", "Pray, hope and do not worry."},
	})

	pages, err := NewRowsSource(types.DefaultGapFactor).Pages(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	for i, p := range pages {
		assert.Equal(t, i+1, p.Number)
		assert.Empty(t, p.Warning)
	}

	var texts []string
	for _, l := range pages[0].Lines {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{"January", "January 1st", "Keep your heart in peace.", "(Letter 1)"}, texts)
	assert.Equal(t, []string{"January", "January 1st", "Keep your heart in peace.", "(Letter 1)"}, segment.Blocks(pages[0].Text))

	assert.Empty(t, pages[1].Lines)
	assert.Empty(t, strings.TrimSpace(pages[1].Text))
	assert.Equal(t, []string{"January 3rd", "Pray, hope and do not worry."}, segment.Blocks(pages[2].Text))
}

func TestRowsSource_Cancelled(t *testing.T) {
	path := writeLettersPDF(t, [][]string{{"January 1st"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRowsSource(types.DefaultGapFactor).Pages(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInspect(t *testing.T) {
	path := writeLettersPDF(t, [][]string{{"January 1st"}, {"January 2nd"}})

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, 2, info.PageCount)
	assert.False(t, info.Encrypted)
	assert.Positive(t, info.FileSize)

	_, err = Inspect(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, ErrInputMissing)
}

func TestPageCountMismatch(t *testing.T) {
	assert.False(t, PageCountMismatch(366, 366))
	assert.True(t, PageCountMismatch(365, 366))
	assert.False(t, PageCountMismatch(12, 0))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
