package application

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	cause := errors.New("disk I/O error")

	tests := []struct {
		name  string
		err   error
		valid bool
		nf    bool
		store bool
	}{
		{"validation", NewValidationError("company", "company must not be empty"), true, false, false},
		{"not found", NewNotFound(7), false, true, false},
		{"store", NewStoreUnavailable("list applications", cause), false, false, true},
		{"wrapped not found", fmt.Errorf("get: %w", NewNotFound(3)), false, true, false},
		{"plain", cause, false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidation(tt.err))
			assert.Equal(t, tt.nf, IsNotFound(tt.err))
			assert.Equal(t, tt.store, IsStoreUnavailable(tt.err))
		})
	}
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: application 7 not found", NewNotFound(7).Error())

	err := NewStoreUnavailable("list applications", errors.New("database is locked"))
	assert.Equal(t, "STORE_UNAVAILABLE: list applications: database is locked", err.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewStoreUnavailable("create application", cause)
	assert.ErrorIs(t, err, cause)
}
