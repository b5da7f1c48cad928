// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"fmt"
	"strings"

	"github.com/pdiddy/daybook/pkg/types"
)

// Kind is the text style of a layout element.
type Kind int

const (
	KindTitle Kind = iota
	KindHeader
	KindBody
)

func (k Kind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindHeader:
		return "header"
	default:
		return "body"
	}
}

// Element is one styled run of text.
type Element struct {
	Kind Kind
	Text string
}

// Section is the rendered form of one record. Every section starts on a
// new page.
type Section struct {
	PageNumber int
	Elements   []Element
}

// Layout plans one section per record, in record order: a "Page N" title,
// the date header when style.DateHeader is set, the metadata header, then
// one body element per non-blank paragraph. Whitespace-only paragraphs have
// nothing to render and are left out; Assemble reports them.
func Layout(records []types.PageRecord, style Style) []Section {
	sections := make([]Section, 0, len(records))
	for _, r := range records {
		s := Section{PageNumber: r.PageNumber}
		s.Elements = append(s.Elements, Element{KindTitle, fmt.Sprintf("Page %d", r.PageNumber)})

		if style.DateHeader && strings.TrimSpace(r.Date) != "" {
			s.Elements = append(s.Elements, Element{KindHeader, r.Date})
		}
		if strings.TrimSpace(r.Metadata) != "" {
			s.Elements = append(s.Elements, Element{KindHeader, r.Metadata})
		}
		for _, p := range r.Paragraphs {
			if strings.TrimSpace(p) == "" {
				continue
			}
			s.Elements = append(s.Elements, Element{KindBody, p})
		}
		sections = append(sections, s)
	}
	return sections
}
