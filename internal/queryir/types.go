package queryir

import "math"

// Query represents an abstract read against the applications table.
//
// This is a sealed interface - only types in this package implement it.
//
// Query types:
//   - Select: ordered, optionally paginated rows
//   - Count: number of rows matching a filter
type Query interface {
	queryNode() // Marker method - seals interface to this package
}

// Predicate represents a filter condition.
//
// This is a sealed interface - only types in this package implement it.
//
// Predicate types:
//   - Equals: field = value
//   - Contains: value is a case-insensitive substring of any listed field
//   - AtLeast: field >= value
//   - AtMost: field <= value
//   - And: all predicates must be true
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Field names a column of the applications table.
type Field string

// Columns of the applications table.
const (
	FieldID          Field = "id"
	FieldCompany     Field = "company"
	FieldRole        Field = "role"
	FieldLocation    Field = "location"
	FieldDateApplied Field = "date_applied"
	FieldStatus      Field = "status"
	FieldNotes       Field = "notes"
)

// Columns lists every column in table order. Select queries return rows with
// exactly these columns.
var Columns = []Field{
	FieldID,
	FieldCompany,
	FieldRole,
	FieldLocation,
	FieldDateApplied,
	FieldStatus,
	FieldNotes,
}

// SortFields is the allow-list of fields a client may sort by.
var SortFields = []Field{
	FieldDateApplied,
	FieldCompany,
	FieldRole,
	FieldStatus,
}

// IsColumn reports whether f names a column of the applications table.
func IsColumn(f Field) bool {
	for _, c := range Columns {
		if c == f {
			return true
		}
	}
	return false
}

// IsSortField reports whether f is in the sort allow-list.
func IsSortField(f Field) bool {
	for _, c := range SortFields {
		if c == f {
			return true
		}
	}
	return false
}

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order describes the sort of a Select.
//
// Semantics:
//
//	ORDER BY <field> <direction>, id <direction>
//
// The id tie-break is implicit and always follows Direction.
type Order struct {
	Field     Field
	Direction Direction
}

// Page is a 1-based pagination window.
type Page struct {
	Number int // 1-based page number
	Size   int // rows per page
}

// Offset returns the number of rows skipped before this page. A product
// that would overflow saturates at math.MaxInt, which is past any table,
// so such a page is empty rather than wrapping to a negative offset.
func (p Page) Offset() int {
	skipped := p.Number - 1
	if skipped <= 0 || p.Size <= 0 {
		return 0
	}
	if skipped > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return skipped * p.Size
}

// Select represents an ordered read of full rows.
//
// Semantics:
//
//	SELECT <Columns> FROM applications WHERE <filter>
//	ORDER BY <order> LIMIT <size> OFFSET <offset>
//
// Filter nil means no constraint. Page nil means all rows.
type Select struct {
	Filter Predicate
	Order  Order
	Page   *Page
}

func (Select) queryNode() {}

// Count represents the number of rows matching a filter, with no ordering
// or pagination applied.
//
// Semantics:
//
//	SELECT COUNT(*) FROM applications WHERE <filter>
type Count struct {
	Filter Predicate
}

func (Count) queryNode() {}

// Equals represents an exact-match predicate.
//
// Semantics:
//
//	<field> = <value>
type Equals struct {
	Field Field
	Value string
}

func (Equals) predicateNode() {}

// Contains represents a case-insensitive substring match against one or more
// fields. The predicate holds when Value occurs in ANY of Fields.
//
// Semantics:
//
//	(<value> in <field1>) OR (<value> in <field2>) ...
//
// This is a plain "contains" test, not tokenized full-text search.
type Contains struct {
	Fields []Field
	Value  string
}

func (Contains) predicateNode() {}

// AtLeast represents an inclusive lower bound.
//
// Semantics:
//
//	<field> >= <value>
//
// Values are compared as text. For date_applied this is chronological
// because dates are stored as YYYY-MM-DD.
type AtLeast struct {
	Field Field
	Value string
}

func (AtLeast) predicateNode() {}

// AtMost represents an inclusive upper bound.
//
// Semantics:
//
//	<field> <= <value>
type AtMost struct {
	Field Field
	Value string
}

func (AtMost) predicateNode() {}

// And represents a conjunction of predicates (all must be true).
// An empty And is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}
