package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/wordgrove/lexdex/internal/domain"
)

// Record is one term's metadata as it appears in the source document.
// Decoding is lenient: a missing or mistyped field degrades to its zero
// value so a single bad record never fails a whole ingestion.
type Record struct {
	Definition string   `json:"definition"`
	Class      string   `json:"class"`
	Type       string   `json:"type"`
	Tags       []string `json:"tags,omitempty"`
}

// UnmarshalJSON decodes a record field by field, tolerating partially
// malformed input. A record that is not a JSON object decodes as empty.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	r.Definition = decodeString(raw["definition"])
	r.Class = decodeString(raw["class"])
	r.Type = decodeString(raw["type"])
	r.Tags = decodeStrings(raw["tags"])
	return nil
}

// Document is the raw words database: category name -> term name -> record.
type Document map[string]map[string]Record

// EmptyDocument returns a document with zero categories.
func EmptyDocument() Document {
	return Document{}
}

// ParseDocument decodes a raw catalog document from JSON.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedDocument, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// TermCount returns the total number of terms across all categories.
func (d Document) TermCount() int {
	n := 0
	for _, terms := range d {
		n += len(terms)
	}
	return n
}

func decodeString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func decodeStrings(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var ss []string
	if err := json.Unmarshal(raw, &ss); err != nil {
		return nil
	}
	return ss
}
