package catalog

// Entry is one flattened term record annotated with its owning category
// (immutable value object).
type Entry struct {
	term       string
	category   string
	definition string
	class      string
	entryType  string
	tags       []string
}

// NewEntry creates an Entry from a term record. The tags slice is copied
// so a later document reload cannot corrupt a previously built entry.
func NewEntry(term, category string, rec Record) Entry {
	return Entry{
		term:       term,
		category:   category,
		definition: rec.Definition,
		class:      rec.Class,
		entryType:  rec.Type,
		tags:       cloneStrings(rec.Tags),
	}
}

// Term returns the term name.
func (e Entry) Term() string { return e.term }

// Category returns the owning category name.
func (e Entry) Category() string { return e.category }

// Definition returns the term definition.
func (e Entry) Definition() string { return e.definition }

// Class returns the term class.
func (e Entry) Class() string { return e.class }

// Type returns the term type.
func (e Entry) Type() string { return e.entryType }

// Tags returns the term's tags. Never nil; an untagged entry has an
// empty slice.
func (e Entry) Tags() []string {
	if e.tags == nil {
		return []string{}
	}
	return e.tags
}

// HasTag reports whether the entry carries the exact tag.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func cloneStrings(ss []string) []string {
	if len(ss) == 0 {
		return nil
	}
	c := make([]string, len(ss))
	copy(c, ss)
	return c
}
