// Package export renders application records as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/transformer1234/job-application-tracker/internal/application"
)

// Header is the CSV header row. Columns follow the table order.
var Header = []string{"id", "company", "role", "location", "date_applied", "status", "notes"}

// WriteCSV writes a header row and one row per record to w.
func WriteCSV(w io.Writer, apps []application.Application) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, a := range apps {
		row := []string{
			strconv.FormatInt(a.ID, 10),
			a.Company,
			a.Role,
			a.Location,
			a.DateApplied.String(),
			a.Status,
			a.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", a.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
