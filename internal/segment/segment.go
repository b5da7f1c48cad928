// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment turns the text of one letter page into its date line,
// body paragraphs, and closing metadata note.
//
// Segmentation has two steps. Blocks (or LineBlocks for positioned lines)
// groups lines into blocks; Classify assigns each block a role. Both steps
// are driven by one PolicyConfig so every extraction backend applies the
// same rules.
package segment

import (
	"strings"

	"github.com/pdiddy/daybook/pkg/types"
)

// Role is the part a block plays on the page.
type Role string

const (
	RoleParagraph Role = "paragraph"
	RoleMetadata  Role = "metadata"
	RoleDiscard   Role = "discard"
)

// Classification is the result of classifying one page's blocks.
type Classification struct {
	Date       string
	Paragraphs []string
	Metadata   string

	// Discarded holds blocks dropped as page chrome, in source order.
	Discarded []string

	// DateFound is false when Date came from the first-block fallback or
	// the page had no blocks.
	DateFound bool
}

// Empty reports whether the page yielded no blocks worth keeping.
func (c Classification) Empty() bool {
	return c.Date == "" && c.Metadata == "" && len(c.Paragraphs) == 0
}

// Segmenter applies one classification policy to page text.
type Segmenter struct {
	policy types.PolicyConfig
}

// New validates the policy and returns a Segmenter for it.
func New(policy types.PolicyConfig) (*Segmenter, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Segmenter{policy: policy}, nil
}

// Policy returns the policy in use.
func (s *Segmenter) Policy() types.PolicyConfig {
	return s.policy
}

// Blocks splits a page into blocks with the policy's boundary rule. The
// vertical-gap rule needs positioned lines; without them it falls back to
// blank lines in text.
func (s *Segmenter) Blocks(text string, lines []Line) []string {
	if s.policy.BoundaryRule == types.BoundaryVerticalGap && len(lines) > 0 {
		return LineBlocks(lines, s.policy.GapFactor)
	}
	return Blocks(text)
}

// Page segments and classifies one page.
func (s *Segmenter) Page(text string, lines []Line) Classification {
	return Classify(s.Blocks(text, lines), s.policy.MetadataRule)
}

// Classify assigns roles to a page's blocks.
//
// Bare month names are discarded first. The first remaining block that is a
// complete date becomes Date; if none is, the first remaining block is used.
// Blocks ahead of the date are discarded. The rest are split by rule:
// MetadataLastBlock makes the final block the metadata and everything
// between date and final block a paragraph; MetadataParenthetical makes the
// last block holding "(" and a later month name the metadata, discards other
// blocks that name a month without "(", and keeps the remainder as paragraphs.
func Classify(blocks []string, rule types.MetadataRule) Classification {
	c := Classification{Paragraphs: []string{}}

	kept := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if IsMonthName(b) {
			c.Discarded = append(c.Discarded, b)
			continue
		}
		kept = append(kept, b)
	}
	if len(kept) == 0 {
		return c
	}

	dateIdx := 0
	for i, b := range kept {
		if IsDate(b) {
			dateIdx = i
			c.DateFound = true
			break
		}
	}
	c.Date = kept[dateIdx]
	c.Discarded = append(c.Discarded, kept[:dateIdx]...)
	rest := kept[dateIdx+1:]

	switch rule {
	case types.MetadataParenthetical:
		classifyParenthetical(&c, rest)
	default:
		if n := len(rest); n > 0 {
			c.Paragraphs = append(c.Paragraphs, rest[:n-1]...)
			c.Metadata = rest[n-1]
		}
	}
	return c
}

func classifyParenthetical(c *Classification, rest []string) {
	metaIdx := -1
	for i, b := range rest {
		if isParenthetical(b) {
			metaIdx = i
		}
	}
	for i, b := range rest {
		switch roleParenthetical(b, i == metaIdx) {
		case RoleMetadata:
			c.Metadata = b
		case RoleDiscard:
			c.Discarded = append(c.Discarded, b)
		default:
			c.Paragraphs = append(c.Paragraphs, b)
		}
	}
}

func roleParenthetical(block string, isMeta bool) Role {
	switch {
	case isMeta:
		return RoleMetadata
	case mentionsMonth(block) && !strings.ContainsRune(block, '('):
		return RoleDiscard
	default:
		return RoleParagraph
	}
}
