package querysql

import (
	"fmt"
	"strings"

	"github.com/transformer1234/job-application-tracker/internal/queryir"
)

// Table is the table every query reads from.
const Table = "applications"

// Compiler compiles QueryIR to parameterized SQL for SQLite.
//
// CRITICAL: every Select carries an ORDER BY with an id tie-break.
// CRITICAL: all values are parameterized, never interpolated. Only field
// names from queryir.Columns reach SQL text, and Compile validates that
// before emitting anything.
type Compiler struct{}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile converts a QueryIR query to parameterized SQL.
// Returns (sql, params, error) tuple.
func (c *Compiler) Compile(q queryir.Query) (string, []any, error) {
	if q == nil {
		return "", nil, fmt.Errorf("cannot compile nil query")
	}
	if err := queryir.Validate(q).Err(); err != nil {
		return "", nil, err
	}

	switch query := q.(type) {
	case queryir.Select:
		return c.compileSelect(query)
	case *queryir.Select:
		return c.compileSelect(*query)
	case queryir.Count:
		return c.compileCount(query)
	case *queryir.Count:
		return c.compileCount(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func (c *Compiler) compileSelect(q queryir.Select) (string, []any, error) {
	where, params, err := c.compileWhere(q.Filter)
	if err != nil {
		return "", nil, err
	}

	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s",
		columnList(),
		Table,
		where,
		c.stableOrderKey(q.Order))

	if q.Page != nil {
		sql += " LIMIT ? OFFSET ?"
		params = append(params, q.Page.Size, q.Page.Offset())
	}

	return sql, params, nil
}

func (c *Compiler) compileCount(q queryir.Count) (string, []any, error) {
	where, params, err := c.compileWhere(q.Filter)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", Table, where), params, nil
}

func (c *Compiler) compileWhere(p queryir.Predicate) (string, []any, error) {
	if p == nil {
		return "", nil, nil
	}
	sql, params, err := c.compilePredicate(p)
	if err != nil {
		return "", nil, fmt.Errorf("compile filter: %w", err)
	}
	return " WHERE " + sql, params, nil
}

// stableOrderKey returns the ORDER BY clause for a Select.
// Text columns sort with COLLATE BINARY so order does not depend on the
// connection's default collation. Ties are broken by id in the same
// direction as the primary key.
func (c *Compiler) stableOrderKey(o queryir.Order) string {
	if o.Field == queryir.FieldID {
		return fmt.Sprintf("id %s", o.Direction)
	}
	return fmt.Sprintf("%s COLLATE BINARY %s, id %s", o.Field, o.Direction, o.Direction)
}

// compilePredicate compiles a queryir.Predicate to a WHERE clause fragment.
// CRITICAL: values NEVER interpolated - always use ? placeholders.
func (c *Compiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	if p == nil {
		return "1 = 1", nil, nil // Always true
	}

	switch pred := p.(type) {
	case queryir.Equals:
		return fmt.Sprintf("%s = ?", pred.Field), []any{pred.Value}, nil
	case *queryir.Equals:
		return c.compilePredicate(*pred)
	case queryir.AtLeast:
		return fmt.Sprintf("%s >= ?", pred.Field), []any{pred.Value}, nil
	case *queryir.AtLeast:
		return c.compilePredicate(*pred)
	case queryir.AtMost:
		return fmt.Sprintf("%s <= ?", pred.Field), []any{pred.Value}, nil
	case *queryir.AtMost:
		return c.compilePredicate(*pred)
	case queryir.Contains:
		return c.compileContains(pred)
	case *queryir.Contains:
		return c.compileContains(*pred)
	case queryir.And:
		return c.compileAnd(pred)
	case *queryir.And:
		return c.compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileContains compiles a Contains predicate to a disjunction of folded
// LIKE matches, one per field. The value is folded and escaped once and
// bound once per field.
func (c *Compiler) compileContains(ct queryir.Contains) (string, []any, error) {
	pattern := "%" + escapeLike(Fold(ct.Value)) + "%"

	parts := make([]string, 0, len(ct.Fields))
	params := make([]any, 0, len(ct.Fields))
	for _, f := range ct.Fields {
		parts = append(parts, fmt.Sprintf(`%s(%s) LIKE ? ESCAPE '\'`, FoldFunc, f))
		params = append(params, pattern)
	}

	if len(parts) == 1 {
		return parts[0], params, nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", params, nil
}

// compileAnd compiles an And predicate to a conjunction with AND.
func (c *Compiler) compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil // Always true (vacuous truth)
	}

	var sqlParts []string
	var allParams []any

	for _, pred := range and.Predicates {
		sql, params, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		if _, nested := pred.(queryir.And); nested && len(and.Predicates) > 1 {
			sql = "(" + sql + ")"
		}
		sqlParts = append(sqlParts, sql)
		allParams = append(allParams, params...)
	}

	return strings.Join(sqlParts, " AND "), allParams, nil
}

func columnList() string {
	names := make([]string, len(queryir.Columns))
	for i, f := range queryir.Columns {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
