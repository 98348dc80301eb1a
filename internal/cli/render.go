package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/transformer1234/job-application-tracker/internal/application"
	"github.com/transformer1234/job-application-tracker/internal/service"
)

const maxCellWidth = 30

// printApplications prints records as an aligned table.
func printApplications(w io.Writer, apps []application.Application) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications found.")
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tCOMPANY\tROLE\tLOCATION\tAPPLIED\tSTATUS")
	fmt.Fprintln(tw, "--\t-------\t----\t--------\t-------\t------")
	for _, a := range apps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			truncate(a.Company),
			truncate(a.Role),
			truncate(a.Location),
			a.DateApplied,
			a.Status,
		)
	}
	tw.Flush()

	// Trim the padding tabwriter leaves on the last column.
	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// printApplication prints one record as labelled lines.
func printApplication(w io.Writer, a application.Application) {
	fmt.Fprintf(w, "ID:        %d\n", a.ID)
	fmt.Fprintf(w, "Company:   %s\n", a.Company)
	fmt.Fprintf(w, "Role:      %s\n", a.Role)
	if a.Location != "" {
		fmt.Fprintf(w, "Location:  %s\n", a.Location)
	}
	fmt.Fprintf(w, "Applied:   %s\n", a.DateApplied)
	fmt.Fprintf(w, "Status:    %s\n", a.Status)
	if a.Notes != "" {
		fmt.Fprintf(w, "Notes:     %s\n", a.Notes)
	}
}

// printPage prints a list page with a position footer.
func printPage(w io.Writer, p service.Page) {
	printApplications(w, p.Data)

	pages := (p.Total + p.PageSize - 1) / p.PageSize
	if pages == 0 {
		pages = 1
	}
	fmt.Fprintf(w, "Page %d of %d (%d total)\n", p.Page, pages, p.Total)
}

// printStats prints the total and the per-status counts, well-known
// statuses first in display order, then the rest alphabetically.
func printStats(w io.Writer, s service.Stats) {
	fmt.Fprintf(w, "Total: %d\n", s.Total)

	seen := make(map[string]bool, len(s.ByStatus))
	for _, status := range application.KnownStatuses {
		seen[status] = true
		fmt.Fprintf(w, "  %-12s %d\n", status, s.ByStatus[status])
	}

	var others []string
	for status := range s.ByStatus {
		if !seen[status] {
			others = append(others, status)
		}
	}
	sort.Strings(others)
	for _, status := range others {
		label := status
		if label == "" {
			label = "(none)"
		}
		fmt.Fprintf(w, "  %-12s %d\n", label, s.ByStatus[status])
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxCellWidth {
		return string(r[:maxCellWidth-3]) + "..."
	}
	return s
}
