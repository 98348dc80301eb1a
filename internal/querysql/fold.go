package querysql

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldFunc is the name of the SQL function that case-folds text for
// substring search. The store registers it on every connection.
const FoldFunc = "fold"

// Fold returns the NFC-normalized Unicode case fold of s. It is the Go side
// of FoldFunc: search values are folded with it before binding, and the
// registered SQL function folds column values with it.
func Fold(s string) string {
	// cases.Caser is stateful, so each call gets its own.
	return cases.Fold().String(norm.NFC.String(s))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes the LIKE metacharacters in s so the value matches
// literally under ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
