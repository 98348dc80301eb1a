package store

import (
	"context"
	"fmt"

	"github.com/transformer1234/job-application-tracker/internal/application"
	"github.com/transformer1234/job-application-tracker/internal/queryir"
)

// Renumber rewrites ids to 1..N in their current order and resets the
// AUTOINCREMENT sequence so the next insert gets N+1. Returns N.
//
// The whole pass runs in one IMMEDIATE transaction: either every row has
// its new id or none has.
func (s *Store) Renumber(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("renumber: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	n, err := s.renumber(ctx, tx)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("renumber: commit: %w", err)
	}
	return n, nil
}

// renumber performs the rewrite inside q, which must be a transaction that
// already holds the write lock:
//  1. read all rows ordered by id
//  2. delete all rows
//  3. reinsert row i with id i (1-based), preserving every other column
//  4. set the table's sqlite_sequence entry to N
func (s *Store) renumber(ctx context.Context, q querier) (int, error) {
	apps, err := s.selectApplications(ctx, q, queryir.All())
	if err != nil {
		return 0, fmt.Errorf("renumber: %w", err)
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM applications`); err != nil {
		return 0, fmt.Errorf("renumber: clear: %w", err)
	}

	for i, app := range apps {
		if err := insertWithID(ctx, q, int64(i+1), app.Draft()); err != nil {
			return 0, fmt.Errorf("renumber: reinsert %d as %d: %w", app.ID, i+1, err)
		}
	}

	// Explicit-id inserts only ever raise the sequence, so it is set
	// directly. The row exists once any insert has happened; on a table
	// that was never written this updates nothing and the next id is 1.
	if _, err := q.ExecContext(ctx, `
		UPDATE sqlite_sequence SET seq = ? WHERE name = 'applications'
	`, len(apps)); err != nil {
		return 0, fmt.Errorf("renumber: reset sequence: %w", err)
	}

	return len(apps), nil
}

// insertWithID inserts d under an explicit id.
func insertWithID(ctx context.Context, q querier, id int64, d application.Draft) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO applications
		(id, company, role, location, date_applied, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		d.Company,
		d.Role,
		nullString(d.Location),
		d.DateApplied,
		nullString(d.Status),
		nullString(d.Notes),
	)
	return err
}
