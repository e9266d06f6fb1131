package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/wordgrove/lexdex/internal/domain/catalog"
)

// Unrestricted is the sentinel axis value meaning "match any value".
const Unrestricted = "all"

// Spec is a filter specification over catalog entries (immutable value
// object). Axis values are normalized at construction: an empty or
// placeholder value becomes the unrestricted sentinel, so the matching
// predicates only ever see "all" or a concrete value.
type Spec struct {
	search       string
	foldedSearch string
	class        string
	entryType    string
	tag          string
}

// New creates a Spec. The search term is NFKC-normalized and trimmed;
// class, type, and tag are normalized to the unrestricted sentinel when
// empty or any casing of "all".
func New(search, class, entryType, tag string) Spec {
	search = strings.TrimSpace(norm.NFKC.String(search))
	return Spec{
		search:       search,
		foldedSearch: fold(search),
		class:        normalizeAxis(class),
		entryType:    normalizeAxis(entryType),
		tag:          normalizeAxis(tag),
	}
}

// Search returns the normalized search term.
func (s Spec) Search() string { return s.search }

// Class returns the class axis value.
func (s Spec) Class() string { return s.class }

// Type returns the type axis value.
func (s Spec) Type() string { return s.entryType }

// Tag returns the tag axis value.
func (s Spec) Tag() string { return s.tag }

// IsUnrestricted reports whether the spec matches every entry.
func (s Spec) IsUnrestricted() bool {
	return s.search == "" &&
		s.class == Unrestricted &&
		s.entryType == Unrestricted &&
		s.tag == Unrestricted
}

// Matches reports whether an entry satisfies all four predicates:
// case-folded substring match on term or definition, exact class match,
// exact type match, and tag membership.
func (s Spec) Matches(e catalog.Entry) bool {
	return s.matchesText(e) && s.matchesClass(e) && s.matchesType(e) && s.matchesTag(e)
}

func (s Spec) matchesText(e catalog.Entry) bool {
	if s.foldedSearch == "" {
		return true
	}
	return strings.Contains(fold(e.Term()), s.foldedSearch) ||
		strings.Contains(fold(e.Definition()), s.foldedSearch)
}

func (s Spec) matchesClass(e catalog.Entry) bool {
	return s.class == Unrestricted || s.class == e.Class()
}

func (s Spec) matchesType(e catalog.Entry) bool {
	return s.entryType == Unrestricted || s.entryType == e.Type()
}

func (s Spec) matchesTag(e catalog.Entry) bool {
	return s.tag == Unrestricted || e.HasTag(s.tag)
}

// normalizeAxis maps empty and placeholder values to the sentinel.
func normalizeAxis(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, Unrestricted) {
		return Unrestricted
	}
	return v
}

// fold applies Unicode case folding. A Caser carries transform state, so
// each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
