package queryir

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FilterSpec is the caller-facing description of a filtered list request.
// Empty strings mean the filter is absent.
type FilterSpec struct {
	Status    string // exact match
	Search    string // case-insensitive substring of company or role
	DateFrom  string // inclusive lower bound, YYYY-MM-DD
	DateTo    string // inclusive upper bound, YYYY-MM-DD
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// Normalize returns a copy of s with sort and paging coerced into range.
//
// An unknown SortBy becomes date_applied. SortOrder is case-insensitive and
// anything but "asc" becomes descending. Page and PageSize are raised to 1.
// Status and Search are trimmed and NFC-normalized, as stored text is;
// whitespace-only values are absent.
//
// Normalize never fails. Callers that want bad input rejected (malformed
// dates, non-integer pages) must check before calling.
func (s FilterSpec) Normalize() FilterSpec {
	out := s

	if !IsSortField(Field(out.SortBy)) {
		out.SortBy = string(FieldDateApplied)
	}
	if strings.EqualFold(strings.TrimSpace(out.SortOrder), string(Asc)) {
		out.SortOrder = string(Asc)
	} else {
		out.SortOrder = string(Desc)
	}

	if out.Page < 1 {
		out.Page = 1
	}
	if out.PageSize < 1 {
		out.PageSize = 1
	}

	out.Status = strings.TrimSpace(norm.NFC.String(out.Status))
	out.Search = strings.TrimSpace(norm.NFC.String(out.Search))
	return out
}

// Predicate builds the conjunction of the filters present in s.
// Returns nil when no filter is present.
func (s FilterSpec) Predicate() Predicate {
	var preds []Predicate

	if s.Status != "" {
		preds = append(preds, Equals{Field: FieldStatus, Value: s.Status})
	}
	if s.Search != "" {
		preds = append(preds, Contains{
			Fields: []Field{FieldCompany, FieldRole},
			Value:  s.Search,
		})
	}
	if s.DateFrom != "" {
		preds = append(preds, AtLeast{Field: FieldDateApplied, Value: s.DateFrom})
	}
	if s.DateTo != "" {
		preds = append(preds, AtMost{Field: FieldDateApplied, Value: s.DateTo})
	}

	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	default:
		return And{Predicates: preds}
	}
}

// Plan normalizes s and returns the page query and the count query.
// Both share one predicate, so the count describes exactly the rows the
// pages are cut from.
func Plan(s FilterSpec) (Select, Count) {
	n := s.Normalize()
	filter := n.Predicate()

	sel := Select{
		Filter: filter,
		Order: Order{
			Field:     Field(n.SortBy),
			Direction: Direction(n.SortOrder),
		},
		Page: &Page{Number: n.Page, Size: n.PageSize},
	}
	return sel, Count{Filter: filter}
}

// All returns a query for every row in id order, unpaginated.
func All() Select {
	return Select{
		Order: Order{Field: FieldID, Direction: Asc},
	}
}
