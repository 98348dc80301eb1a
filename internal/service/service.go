// Package service implements the record operations on top of a Repository:
// input normalization and validation, error classification, and logging of
// mutations.
//
// Every error returned by a Service method is an *application.Error, so
// callers branch on application.IsValidation, IsNotFound and
// IsStoreUnavailable rather than on store or driver errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/transformer1234/job-application-tracker/internal/application"
	"github.com/transformer1234/job-application-tracker/internal/queryir"
	"github.com/transformer1234/job-application-tracker/internal/store"
)

// Repository is the storage the service needs. *store.Store implements it.
type Repository interface {
	Create(ctx context.Context, d application.Draft) (application.Application, error)
	Import(ctx context.Context, drafts []application.Draft) ([]application.Application, error)
	Get(ctx context.Context, id int64) (application.Application, error)
	ListAll(ctx context.Context) ([]application.Application, error)
	ListFiltered(ctx context.Context, spec queryir.FilterSpec) ([]application.Application, int, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	Renumber(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) ([]store.StatusCount, error)
}

// Page is one page of a filtered list.
type Page struct {
	Data     []application.Application `json:"data"`
	Total    int                       `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"page_size"`
}

// Stats summarizes the table for the analytics view.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// Service exposes the record operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for mutation and failure logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service backed by repo.
func New(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates d and stores it. Text fields are trimmed and
// NFC-normalized first; an empty status defaults to Applied.
func (s *Service) Create(ctx context.Context, d application.Draft) (application.Application, error) {
	d, err := prepareDraft(d)
	if err != nil {
		return application.Application{}, err
	}

	app, err := s.repo.Create(ctx, d)
	if err != nil {
		return application.Application{}, s.storeError("create application", err)
	}

	s.logger.Info("application created",
		"id", app.ID,
		"company", app.Company,
		"status", app.Status,
	)
	return app, nil
}

// Import validates every draft and then stores all of them in one
// transaction. A single invalid draft rejects the whole batch before
// anything is written.
func (s *Service) Import(ctx context.Context, drafts []application.Draft) ([]application.Application, error) {
	prepared := make([]application.Draft, len(drafts))
	for i, d := range drafts {
		p, err := prepareDraft(d)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		prepared[i] = p
	}

	apps, err := s.repo.Import(ctx, prepared)
	if err != nil {
		return nil, s.storeError("import applications", err)
	}

	s.logger.Info("applications imported", "count", len(apps))
	return apps, nil
}

// ListAll returns every record ordered by id.
func (s *Service) ListAll(ctx context.Context) ([]application.Application, error) {
	apps, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, s.storeError("list applications", err)
	}
	return apps, nil
}

// List returns one page of records matching spec.
//
// DateFrom and DateTo must be YYYY-MM-DD when present; anything else is a
// validation error. Sort and paging parameters are normalized, never
// rejected. The returned Page echoes the normalized page and page size.
func (s *Service) List(ctx context.Context, spec queryir.FilterSpec) (Page, error) {
	var err error
	if spec.DateFrom, err = canonicalDate("date_from", spec.DateFrom); err != nil {
		return Page{}, err
	}
	if spec.DateTo, err = canonicalDate("date_to", spec.DateTo); err != nil {
		return Page{}, err
	}
	spec = spec.Normalize()

	apps, total, err := s.repo.ListFiltered(ctx, spec)
	if err != nil {
		return Page{}, s.storeError("list applications", err)
	}

	return Page{
		Data:     apps,
		Total:    total,
		Page:     spec.Page,
		PageSize: spec.PageSize,
	}, nil
}

// Export returns every record matching spec's filters in spec's sort
// order, ignoring its paging. Date bounds are validated as in List.
func (s *Service) Export(ctx context.Context, spec queryir.FilterSpec) ([]application.Application, error) {
	spec.Page = 1
	spec.PageSize = math.MaxInt32

	page, err := s.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Get returns the record with the given id.
func (s *Service) Get(ctx context.Context, id int64) (application.Application, error) {
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		return application.Application{}, s.classify("get application", id, err)
	}
	return app, nil
}

// UpdateStatus overwrites the status of one record. Any status string is
// accepted; the well-known values are a client convention.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	status = application.NormalizeText(status)

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return s.classify("update status", id, err)
	}

	s.logger.Info("application status updated", "id", id, "status", status)
	return nil
}

// Delete removes one record. Surviving records are renumbered to 1..N in
// the same transaction, so their ids may change.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.classify("delete application", id, err)
	}

	s.logger.Info("application deleted", "id", id)
	return nil
}

// Compact renumbers ids to 1..N without deleting anything and returns N.
func (s *Service) Compact(ctx context.Context) (int, error) {
	n, err := s.repo.Renumber(ctx)
	if err != nil {
		return 0, s.storeError("compact", err)
	}

	s.logger.Info("applications renumbered", "count", n)
	return n, nil
}

// Stats returns the total and the count per status.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return Stats{}, s.storeError("stats", err)
	}

	stats := Stats{ByStatus: make(map[string]int, len(counts))}
	for _, c := range counts {
		stats.ByStatus[c.Status] = c.Count
		stats.Total += c.Count
	}
	return stats, nil
}

// prepareDraft normalizes d, applies the status default and validates it.
func prepareDraft(d application.Draft) (application.Draft, error) {
	d = d.Normalize()
	if d.Status == "" {
		d.Status = application.StatusApplied
	}
	if err := d.Validate(); err != nil {
		return application.Draft{}, err
	}
	return d, nil
}

// canonicalDate validates an optional date bound and returns it in
// YYYY-MM-DD form so text comparison in the store is chronological.
func canonicalDate(field, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	d, err := application.ParseDate(value)
	if err != nil {
		return "", application.NewValidationError(field, fmt.Sprintf("%s must be a date in YYYY-MM-DD form", field))
	}
	return d.String(), nil
}

// classify maps a repository error for a single-record operation.
func (s *Service) classify(op string, id int64, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return application.NewNotFound(id)
	}
	return s.storeError(op, err)
}

// storeError logs and wraps a storage failure.
func (s *Service) storeError(op string, err error) error {
	s.logger.Error("store operation failed", "op", op, "error", err)
	return application.NewStoreUnavailable(op, err)
}
