package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/transformer1234/job-application-tracker/internal/application"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestDraft creates a draft with the required fields set.
func createTestDraft(company, role, date, status string) application.Draft {
	d, err := application.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return application.Draft{
		Company:     company,
		Role:        role,
		DateApplied: d,
		Status:      status,
	}
}

// mustCreate inserts drafts in order and returns the stored records.
func mustCreate(t *testing.T, s *Store, drafts ...application.Draft) []application.Application {
	t.Helper()
	ctx := context.Background()
	apps := make([]application.Application, 0, len(drafts))
	for _, d := range drafts {
		app, err := s.Create(ctx, d)
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		apps = append(apps, app)
	}
	return apps
}

// ids extracts record ids in order.
func ids(apps []application.Application) []int64 {
	out := make([]int64, len(apps))
	for i, a := range apps {
		out[i] = a.ID
	}
	return out
}

// companies extracts company names in order.
func companies(apps []application.Application) []string {
	out := make([]string, len(apps))
	for i, a := range apps {
		out[i] = a.Company
	}
	return out
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}
