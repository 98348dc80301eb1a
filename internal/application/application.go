package application

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Well-known status values offered by clients. The store does not enforce
// them; any non-empty status string is accepted.
const (
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusRejected  = "Rejected"
	StatusOffer     = "Offer"
)

// KnownStatuses lists the well-known statuses in display order.
var KnownStatuses = []string{StatusApplied, StatusInterview, StatusRejected, StatusOffer}

// Draft is an application record without an identity, as submitted for
// creation. Location and Notes are optional; empty means absent.
type Draft struct {
	Company     string `json:"company" yaml:"company"`
	Role        string `json:"role" yaml:"role"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	DateApplied Date   `json:"date_applied" yaml:"date_applied"`
	Status      string `json:"status" yaml:"status"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Application is a stored job application record.
type Application struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Location    string `json:"location"`
	DateApplied Date   `json:"date_applied"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// MarshalJSON always emits every key. Absent location and notes encode as
// null rather than "" so clients see the same shape for every record.
func (a Application) MarshalJSON() ([]byte, error) {
	type record Application // no methods, so no recursion
	return json.Marshal(struct {
		record
		Location *string `json:"location"`
		Notes    *string `json:"notes"`
	}{
		record:   record(a),
		Location: optional(a.Location),
		Notes:    optional(a.Notes),
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// FromDraft builds an Application with the given id from d.
func FromDraft(id int64, d Draft) Application {
	return Application{
		ID:          id,
		Company:     d.Company,
		Role:        d.Role,
		Location:    d.Location,
		DateApplied: d.DateApplied,
		Status:      d.Status,
		Notes:       d.Notes,
	}
}

// Draft returns the record without its identity.
func (a Application) Draft() Draft {
	return Draft{
		Company:     a.Company,
		Role:        a.Role,
		Location:    a.Location,
		DateApplied: a.DateApplied,
		Status:      a.Status,
		Notes:       a.Notes,
	}
}

// Normalize returns a copy of d with every text field trimmed and converted
// to Unicode NFC, so visually identical input compares and searches equally.
func (d Draft) Normalize() Draft {
	return Draft{
		Company:     NormalizeText(d.Company),
		Role:        NormalizeText(d.Role),
		Location:    NormalizeText(d.Location),
		DateApplied: d.DateApplied,
		Status:      NormalizeText(d.Status),
		Notes:       strings.TrimSpace(norm.NFC.String(d.Notes)),
	}
}

// Validate checks the record invariants: company and role are non-empty and
// date_applied is set. It returns a validation *Error naming the first
// offending field.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Company) == "" {
		return NewValidationError("company", "company must not be empty")
	}
	if strings.TrimSpace(d.Role) == "" {
		return NewValidationError("role", "role must not be empty")
	}
	if d.DateApplied.IsZero() {
		return NewValidationError("date_applied", "date_applied is required")
	}
	return nil
}

// NormalizeText trims surrounding whitespace and applies NFC normalization.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
