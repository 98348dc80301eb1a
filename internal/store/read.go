package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/transformer1234/job-application-tracker/internal/application"
	"github.com/transformer1234/job-application-tracker/internal/queryir"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("application not found")

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// StatusCount is the number of records sharing one status value.
type StatusCount struct {
	Status string
	Count  int
}

// Get returns the record with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (application.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, company, role, location, date_applied, status, notes
		FROM applications
		WHERE id = ?
	`, id)

	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return application.Application{}, ErrNotFound
	}
	if err != nil {
		return application.Application{}, fmt.Errorf("get application %d: %w", id, err)
	}
	return app, nil
}

// ListAll returns every record ordered by id ascending.
//
// Returns an empty slice (not nil) if the table is empty.
func (s *Store) ListAll(ctx context.Context) ([]application.Application, error) {
	apps, err := s.selectApplications(ctx, s.db, queryir.All())
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// ListFiltered returns one page of records matching spec and the total
// number of matching records ignoring pagination.
//
// spec is normalized first (see queryir.FilterSpec.Normalize). The count and
// the page are read in one transaction, so total always describes the same
// rows the page was cut from.
func (s *Store) ListFiltered(ctx context.Context, spec queryir.FilterSpec) ([]application.Application, int, error) {
	sel, cnt := queryir.Plan(spec)

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("list filtered: begin tx: %w", err)
	}
	defer tx.Rollback() // Read-only; nothing to commit

	total, err := s.count(ctx, tx, cnt)
	if err != nil {
		return nil, 0, fmt.Errorf("list filtered: %w", err)
	}

	apps, err := s.selectApplications(ctx, tx, sel)
	if err != nil {
		return nil, 0, fmt.Errorf("list filtered: %w", err)
	}

	return apps, total, nil
}

// CountByStatus returns the number of records per status, ordered by status.
// Records without a status are counted under the empty string.
func (s *Store) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(status, ''), COUNT(*)
		FROM applications
		GROUP BY COALESCE(status, '')
		ORDER BY COALESCE(status, '') COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	counts := []StatusCount{}
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("count by status: scan: %w", err)
		}
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count by status: iterate: %w", err)
	}

	return counts, nil
}

// count runs a compiled Count query.
func (s *Store) count(ctx context.Context, q querier, cnt queryir.Count) (int, error) {
	sqlText, params, err := s.compiler.Compile(cnt)
	if err != nil {
		return 0, fmt.Errorf("compile count: %w", err)
	}

	var total int
	if err := q.QueryRowContext(ctx, sqlText, params...).Scan(&total); err != nil {
		return 0, fmt.Errorf("query count: %w", err)
	}
	return total, nil
}

// selectApplications runs a compiled Select query.
func (s *Store) selectApplications(ctx context.Context, q querier, sel queryir.Select) ([]application.Application, error) {
	sqlText, params, err := s.compiler.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("compile select: %w", err)
	}

	rows, err := q.QueryContext(ctx, sqlText, params...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	apps := []application.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}

	return apps, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanApplication scans one row in queryir.Columns order.
func scanApplication(row rowScanner) (application.Application, error) {
	var (
		app                     application.Application
		location, status, notes sql.NullString
	)

	err := row.Scan(
		&app.ID,
		&app.Company,
		&app.Role,
		&location,
		&app.DateApplied,
		&status,
		&notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return application.Application{}, err
	}
	if err != nil {
		return application.Application{}, fmt.Errorf("scan application: %w", err)
	}

	app.Location = location.String
	app.Status = status.String
	app.Notes = notes.String
	return app, nil
}
