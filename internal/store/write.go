package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/transformer1234/job-application-tracker/internal/application"
)

// Create inserts a record and returns it with its assigned id.
// The draft is stored as given; validation is the caller's job.
func (s *Store) Create(ctx context.Context, d application.Draft) (application.Application, error) {
	id, err := insertDraft(ctx, s.db, d)
	if err != nil {
		return application.Application{}, fmt.Errorf("create application: %w", err)
	}
	return application.FromDraft(id, d), nil
}

// Import inserts every draft in one transaction. Either all records are
// created, in input order, or none are.
func (s *Store) Import(ctx context.Context, drafts []application.Draft) ([]application.Application, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("import: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	apps := make([]application.Application, 0, len(drafts))
	for i, d := range drafts {
		id, err := insertDraft(ctx, tx, d)
		if err != nil {
			return nil, fmt.Errorf("import: record %d: %w", i, err)
		}
		apps = append(apps, application.FromDraft(id, d))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("import: commit: %w", err)
	}
	return apps, nil
}

// UpdateStatus overwrites the status of one record.
// Returns ErrNotFound if no record has the id.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE applications SET status = ? WHERE id = ?
	`, nullString(status), id)
	if err != nil {
		return fmt.Errorf("update status %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status %d: rows affected: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one record and renumbers the rest in the same
// transaction. Observers see either the table before the delete or the
// renumbered table after it, never the gap.
// Returns ErrNotFound if no record has the id; nothing is renumbered then.
func (s *Store) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete %d: begin tx: %w", id, err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %d: rows affected: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if _, err := s.renumber(ctx, tx); err != nil {
		return fmt.Errorf("delete %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete %d: commit: %w", id, err)
	}
	return nil
}

// insertDraft inserts d and returns the assigned id.
func insertDraft(ctx context.Context, q querier, d application.Draft) (int64, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO applications
		(company, role, location, date_applied, status, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		d.Company,
		d.Role,
		nullString(d.Location),
		d.DateApplied,
		nullString(d.Status),
		nullString(d.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("insert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// nullString maps the empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
