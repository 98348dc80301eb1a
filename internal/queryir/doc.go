// Package queryir provides the typed query representation for reads against
// the applications table.
//
// QueryIR is the boundary between request parameters and SQL text. Callers
// describe what they want (which rows, in which order, which page) as Go
// values; the querysql package is the only place that turns those values into
// SQL, and it binds every user-supplied value as a parameter.
//
// ARCHITECTURE:
//
//	[FilterSpec] --Plan--> [Select + Count] --querysql--> [SQL, params]
//
// Plan builds one Predicate from the filter and shares it between the page
// query and the count query, so the reported total always describes the same
// rows the pages are cut from.
//
// SEALED INTERFACES:
//
// Query and Predicate are sealed with marker methods. Only types in this
// package implement them, so compilers can switch exhaustively:
//
//	switch q := query.(type) {
//	case Select:
//	    // rows
//	case Count:
//	    // total
//	}
//
// FIELDS:
//
// Field names are a closed set (see Columns). Fields are the only part of a
// query that becomes SQL text, so every field is checked against Columns by
// Validate, and sort fields are additionally restricted to SortFields.
// FilterSpec.Normalize coerces an unknown sort field to FieldDateApplied
// rather than rejecting it.
//
// ORDERING:
//
// Every Select carries an Order. Ties on the sort field are broken by id in
// the same direction, which makes ascending and descending results exact
// reverses of each other.
package queryir
