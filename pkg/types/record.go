// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingPageNumber is returned when a decoded record carries neither
// page_number nor the legacy page key.
var ErrMissingPageNumber = errors.New("record has no page_number")

// PageRecord is the structured form of one source page: the letter's date
// line, its body paragraphs in source order, and the trailing note.
type PageRecord struct {
	// PageNumber is the 1-based index of the source page.
	PageNumber int `json:"page_number" yaml:"page_number"`

	// Date is the date block ("January 1st"), the fallback first block when
	// no date matched, or empty for a page without text.
	Date string `json:"date" yaml:"date"`

	// Paragraphs holds the body blocks. Never nil once normalized.
	Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`

	// Metadata is the provenance note closing the letter, e.g.
	// "(Extract from Letter 1, to Person X)". Empty when absent.
	Metadata string `json:"metadata" yaml:"metadata"`
}

// IsEmpty reports whether the record carries no text at all.
func (r PageRecord) IsEmpty() bool {
	return r.Date == "" && r.Metadata == "" && len(r.Paragraphs) == 0
}

// pageRecordJSON mirrors PageRecord on the wire. Pointers distinguish a
// missing key from a zero value; Page accepts the older "page" key.
type pageRecordJSON struct {
	PageNumber *int     `json:"page_number,omitempty"`
	Page       *int     `json:"page,omitempty"`
	Date       *string  `json:"date"`
	Paragraphs []string `json:"paragraphs"`
	Metadata   *string  `json:"metadata"`
}

// MarshalJSON writes every key, with an empty array for no paragraphs.
// Characters such as "&" are kept literal.
func (r PageRecord) MarshalJSON() ([]byte, error) {
	paragraphs := r.Paragraphs
	if paragraphs == nil {
		paragraphs = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(struct {
		PageNumber int      `json:"page_number"`
		Date       string   `json:"date"`
		Paragraphs []string `json:"paragraphs"`
		Metadata   string   `json:"metadata"`
	}{r.PageNumber, r.Date, paragraphs, r.Metadata})
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON reads a record written by any extractor variant. A null
// metadata or date decodes as "". A record with no page number fails with
// ErrMissingPageNumber.
func (r *PageRecord) UnmarshalJSON(data []byte) error {
	var raw pageRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.PageNumber != nil:
		r.PageNumber = *raw.PageNumber
	case raw.Page != nil:
		r.PageNumber = *raw.Page
	default:
		return ErrMissingPageNumber
	}
	if r.PageNumber < 1 {
		return fmt.Errorf("page_number %d: must be positive", r.PageNumber)
	}

	r.Date = ""
	if raw.Date != nil {
		r.Date = *raw.Date
	}
	r.Metadata = ""
	if raw.Metadata != nil {
		r.Metadata = *raw.Metadata
	}
	r.Paragraphs = raw.Paragraphs
	if r.Paragraphs == nil {
		r.Paragraphs = []string{}
	}
	return nil
}

// DecodeRecords parses a JSON array of records. The error for a bad record
// names its index in the array.
func DecodeRecords(data []byte) ([]PageRecord, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	records := make([]PageRecord, len(raw))
	for i, msg := range raw {
		if err := json.Unmarshal(msg, &records[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return records, nil
}

// EncodeRecords renders records as a two-space indented UTF-8 array with a
// trailing newline. Non-ASCII text is written as is, and the same records
// always encode to the same bytes.
func EncodeRecords(records []PageRecord) ([]byte, error) {
	if records == nil {
		records = []PageRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}
	return buf.Bytes(), nil
}
