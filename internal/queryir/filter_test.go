package queryir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_Defaults(t *testing.T) {
	got := FilterSpec{}.Normalize()

	want := FilterSpec{
		SortBy:    "date_applied",
		SortOrder: "DESC",
		Page:      1,
		PageSize:  1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_SortBy(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"date_applied", "date_applied"},
		{"company", "company"},
		{"role", "role"},
		{"status", "status"},
		{"notes", "date_applied"},
		{"id", "date_applied"},
		{"Company", "date_applied"},
		{"company; DROP TABLE applications", "date_applied"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterSpec{SortBy: tt.in}.Normalize().SortBy)
		})
	}
}

func TestNormalize_SortOrder(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"asc", "ASC"},
		{"ASC", "ASC"},
		{" Asc ", "ASC"},
		{"desc", "DESC"},
		{"", "DESC"},
		{"up", "DESC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FilterSpec{SortOrder: tt.in}.Normalize().SortOrder, "input %q", tt.in)
	}
}

func TestNormalize_PagingLowerBounds(t *testing.T) {
	got := FilterSpec{Page: -3, PageSize: 0}.Normalize()
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.PageSize)

	got = FilterSpec{Page: 4, PageSize: 25}.Normalize()
	assert.Equal(t, 4, got.Page)
	assert.Equal(t, 25, got.PageSize)
}

func TestNormalize_SearchWhitespaceIsAbsent(t *testing.T) {
	got := FilterSpec{Search: "   "}.Normalize()
	assert.Equal(t, "", got.Search)
	assert.Nil(t, got.Predicate())
}

func TestNormalize_StatusTrimmedAndComposed(t *testing.T) {
	got := FilterSpec{Status: " Entrevue planifie\u0301e "}.Normalize()
	assert.Equal(t, "Entrevue planifi\u00e9e", got.Status)

	got = FilterSpec{Status: "  "}.Normalize()
	assert.Nil(t, got.Predicate())
}

func TestPredicate_None(t *testing.T) {
	assert.Nil(t, FilterSpec{}.Predicate())
}

func TestPredicate_Single(t *testing.T) {
	got := FilterSpec{Status: "Offer"}.Predicate()
	assert.Equal(t, Equals{Field: FieldStatus, Value: "Offer"}, got)
}

func TestPredicate_AllFilters(t *testing.T) {
	got := FilterSpec{
		Status:   "Applied",
		Search:   "eng",
		DateFrom: "2024-01-01",
		DateTo:   "2024-06-30",
	}.Predicate()

	want := And{Predicates: []Predicate{
		Equals{Field: FieldStatus, Value: "Applied"},
		Contains{Fields: []Field{FieldCompany, FieldRole}, Value: "eng"},
		AtLeast{Field: FieldDateApplied, Value: "2024-01-01"},
		AtMost{Field: FieldDateApplied, Value: "2024-06-30"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Predicate() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_SharesFilter(t *testing.T) {
	sel, cnt := Plan(FilterSpec{Status: "Applied", SortBy: "role", SortOrder: "asc", Page: 3, PageSize: 2})

	if diff := cmp.Diff(sel.Filter, cnt.Filter); diff != "" {
		t.Errorf("select and count filters differ (-select +count):\n%s", diff)
	}
	assert.Equal(t, Order{Field: FieldRole, Direction: Asc}, sel.Order)
	assert.Equal(t, &Page{Number: 3, Size: 2}, sel.Page)
}

func TestAll(t *testing.T) {
	q := All()
	assert.Nil(t, q.Filter)
	assert.Nil(t, q.Page)
	assert.Equal(t, Order{Field: FieldID, Direction: Asc}, q.Order)
}
