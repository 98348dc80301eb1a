package queryir

import (
	"fmt"
	"strings"
)

// ValidationResult lists the problems found in a query.
type ValidationResult struct {
	// Valid is true when Problems is empty.
	Valid bool

	// Problems describes each rule the query breaks, in traversal order.
	Problems []string
}

// Err returns the problems as a single error, or nil if the query is valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("invalid query: %s", strings.Join(r.Problems, "; "))
}

// Validate checks a query against the rules every compiler relies on:
//  1. Every field is a column of the applications table
//  2. The sort field is id or in SortFields, and the direction is Asc or Desc
//  3. Pages are 1-based with a positive size
//  4. Contains names at least one field
//
// Field names are the only part of a query placed into SQL text, so a query
// that fails rule 1 must never reach a compiler.
//
// Validate is a pure function with no side effects.
func Validate(query Query) ValidationResult {
	v := &validator{
		problems: []string{},
	}
	v.validateQuery(query)

	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

// validator accumulates problems during traversal.
type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	if q == nil {
		v.addProblem("nil query")
		return
	}

	switch query := q.(type) {
	case Select:
		v.validateSelect(query)
	case *Select:
		v.validateSelect(*query)
	case Count:
		v.validatePredicate(query.Filter)
	case *Count:
		v.validatePredicate(query.Filter)
	default:
		v.addProblem("unknown query type: %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	v.validatePredicate(sel.Filter)

	if !IsSortField(sel.Order.Field) && sel.Order.Field != FieldID {
		v.addProblem("field %q is not sortable", sel.Order.Field)
	}
	if sel.Order.Direction != Asc && sel.Order.Direction != Desc {
		v.addProblem("unknown sort direction %q", sel.Order.Direction)
	}

	if sel.Page != nil {
		if sel.Page.Number < 1 {
			v.addProblem("page number %d is below 1", sel.Page.Number)
		}
		if sel.Page.Size < 1 {
			v.addProblem("page size %d is below 1", sel.Page.Size)
		}
	}
}

func (v *validator) validatePredicate(p Predicate) {
	if p == nil {
		return // nil predicates are valid (no filter)
	}

	switch pred := p.(type) {
	case Equals:
		v.validateField(pred.Field)
	case *Equals:
		v.validateField(pred.Field)
	case Contains:
		v.validateContains(pred)
	case *Contains:
		v.validateContains(*pred)
	case AtLeast:
		v.validateField(pred.Field)
	case *AtLeast:
		v.validateField(pred.Field)
	case AtMost:
		v.validateField(pred.Field)
	case *AtMost:
		v.validateField(pred.Field)
	case And:
		v.validateAnd(pred)
	case *And:
		v.validateAnd(*pred)
	default:
		v.addProblem("unknown predicate type: %T", p)
	}
}

func (v *validator) validateField(f Field) {
	if !IsColumn(f) {
		v.addProblem("unknown field %q", f)
	}
}

func (v *validator) validateContains(c Contains) {
	if len(c.Fields) == 0 {
		v.addProblem("contains predicate has no fields")
	}
	for _, f := range c.Fields {
		v.validateField(f)
	}
}

func (v *validator) validateAnd(and And) {
	for _, subPred := range and.Predicates {
		v.validatePredicate(subPred)
	}
}
