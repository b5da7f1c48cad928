// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Line is one positioned line of page text. Top grows downward from the top
// edge of the page; Height is the line's font height in the same units.
type Line struct {
	Text   string  `json:"text"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// lineBreaks maps every line terminator a PDF text backend may emit to "\n".
// Form feed separates pages in pdftotext output and is treated as a break.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n")

// normalize applies NFKC so ligatures ("ﬁ") and compatibility spaces compare
// equal to their plain forms, then collapses internal whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// isHeaderLine reports whether a single line is page heading material: a
// bare month name or a full date. Such a line is always a block of its own,
// even when no blank line separates it from the body.
func isHeaderLine(line string) bool {
	line = normalize(line)
	return IsMonthName(line) || IsDate(line)
}

// Blocks splits raw page text into blocks. A block is a run of non-blank
// lines joined by single spaces; blank lines end a block, and heading lines
// stand alone. Empty or whitespace-only input yields an empty slice.
func Blocks(text string) []string {
	blocks := []string{}
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		if b := normalize(strings.Join(current, " ")); b != "" {
			blocks = append(blocks, b)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(lineBreaks.Replace(text), "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if isHeaderLine(line) {
			flush()
			current = append(current, line)
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// LineBlocks groups positioned lines into blocks. A new block starts when
// the advance from one line's top to the next exceeds gapFactor times the
// taller of the two lines, or when a line has no text. Heading lines stand
// alone as in Blocks. Lines must be in reading order.
func LineBlocks(lines []Line, gapFactor float64) []string {
	blocks := []string{}
	var current []string
	var prev *Line

	flush := func() {
		if len(current) == 0 {
			return
		}
		if b := normalize(strings.Join(current, " ")); b != "" {
			blocks = append(blocks, b)
		}
		current = current[:0]
	}

	for i := range lines {
		l := &lines[i]
		if strings.TrimSpace(l.Text) == "" {
			flush()
			prev = nil
			continue
		}
		if prev != nil && Gap(*prev, *l, gapFactor) {
			flush()
		}
		if isHeaderLine(l.Text) {
			flush()
			current = append(current, l.Text)
			flush()
			prev = l
			continue
		}
		current = append(current, l.Text)
		prev = l
	}
	flush()
	return blocks
}

// Gap reports whether the advance from prev to cur is wide enough to start a
// new block. Lines without a height never form a gap.
func Gap(prev, cur Line, gapFactor float64) bool {
	h := max(prev.Height, cur.Height)
	if h <= 0 {
		return false
	}
	return cur.Top-prev.Top > gapFactor*h
}
