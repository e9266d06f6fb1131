package catalog

import (
	"sort"
	"time"
)

// Snapshot is the queryable view derived from one raw document: the flat
// entry list plus the tag, class, and type universes. A snapshot is built
// wholesale and never mutated; a reload produces a new one.
type Snapshot struct {
	entries []Entry
	tags    []string
	classes []string
	types   []string
	builtAt time.Time
}

// BuildSnapshot flattens a raw document into a Snapshot.
//
// Entries are ordered by category name ascending, then term name
// ascending, which makes the output deterministic for any representation
// of the same document. Tag, class, and type universes are deduplicated
// and sorted ascending by code point.
func BuildSnapshot(doc Document) *Snapshot {
	categories := make([]string, 0, len(doc))
	for category := range doc {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	entries := make([]Entry, 0, doc.TermCount())
	tagSet := make(map[string]struct{})
	classSet := make(map[string]struct{})
	typeSet := make(map[string]struct{})

	for _, category := range categories {
		terms := make([]string, 0, len(doc[category]))
		for term := range doc[category] {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		for _, term := range terms {
			rec := doc[category][term]
			entries = append(entries, NewEntry(term, category, rec))

			for _, tag := range rec.Tags {
				tagSet[tag] = struct{}{}
			}
			if rec.Class != "" {
				classSet[rec.Class] = struct{}{}
			}
			if rec.Type != "" {
				typeSet[rec.Type] = struct{}{}
			}
		}
	}

	return &Snapshot{
		entries: entries,
		tags:    sortedKeys(tagSet),
		classes: sortedKeys(classSet),
		types:   sortedKeys(typeSet),
		builtAt: time.Now().UTC(),
	}
}

// Entries returns the flattened entry list.
func (s *Snapshot) Entries() []Entry { return s.entries }

// Tags returns the tag universe, sorted ascending without duplicates.
func (s *Snapshot) Tags() []string { return s.tags }

// Classes returns the distinct classes, sorted ascending.
func (s *Snapshot) Classes() []string { return s.classes }

// Types returns the distinct types, sorted ascending.
func (s *Snapshot) Types() []string { return s.types }

// BuiltAt returns the snapshot build time.
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// Len returns the number of entries.
func (s *Snapshot) Len() int { return len(s.entries) }

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
