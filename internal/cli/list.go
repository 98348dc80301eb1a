package cli

import (
	"bytes"
	"fmt"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/transformer1234/job-application-tracker/internal/export"
	"github.com/transformer1234/job-application-tracker/internal/queryir"
)

// filterFlags are the list filters shared by list and export.
type filterFlags struct {
	Status    string
	Search    string
	From      string
	To        string
	SortBy    string
	SortOrder string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Status, "status", "", "exact status to match")
	cmd.Flags().StringVar(&f.Search, "search", "", "case-insensitive text to find in company or role")
	cmd.Flags().StringVar(&f.From, "from", "", "earliest date applied, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&f.To, "to", "", "latest date applied, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&f.SortBy, "sort-by", string(queryir.FieldDateApplied), "sort field (date_applied|company|role|status)")
	cmd.Flags().StringVar(&f.SortOrder, "sort-order", "desc", "sort order (asc|desc)")
}

func (f *filterFlags) spec() queryir.FilterSpec {
	return queryir.FilterSpec{
		Status:    f.Status,
		Search:    f.Search,
		DateFrom:  f.From,
		DateTo:    f.To,
		SortBy:    f.SortBy,
		SortOrder: f.SortOrder,
	}
}

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	filterFlags
	Page     int
	PageSize int
	All      bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Long: `List applications with optional filters, sorting and pagination.

Filters combine with AND. Unknown --sort-by values sort by date applied;
--sort-order is desc unless it is asc. --page-size defaults to the configured
default_page_size and is capped at max_page_size. --all ignores every other
flag and prints all applications in id order.

Example:
  tracker list --status Applied
  tracker list --search acme --sort-by company --sort-order asc
  tracker list --from 2024-01-01 --to 2024-03-31 --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	opts.filterFlags.register(cmd)
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "records per page (default from config)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "list every application in id order")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if opts.All {
		apps, err := e.svc.ListAll(cmd.Context())
		if err != nil {
			return serviceError("failed to list applications", err)
		}
		if opts.Format == "json" {
			return e.formatter.Success(apps)
		}
		printApplications(e.formatter.Writer, apps)
		return nil
	}

	spec := opts.spec()
	spec.Page = opts.Page
	spec.PageSize = opts.PageSize
	if spec.PageSize == 0 {
		spec.PageSize = e.cfg.DefaultPageSize
	}
	if spec.PageSize > e.cfg.MaxPageSize {
		spec.PageSize = e.cfg.MaxPageSize
	}

	page, err := e.svc.List(cmd.Context(), spec)
	if err != nil {
		return serviceError("failed to list applications", err)
	}

	if opts.Format == "json" {
		return e.formatter.Success(page)
	}
	printPage(e.formatter.Writer, page)
	return nil
}

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	filterFlags
	Out string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export applications as CSV",
		Long: `Export every application matching the filters as CSV.

Without --out the CSV is written to stdout. With --out the file is replaced
atomically, so a reader never sees a partial export.

Example:
  tracker export --status Offer > offers.csv
  tracker export --from 2024-01-01 --out 2024.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	opts.filterFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	apps, err := e.svc.Export(cmd.Context(), opts.spec())
	if err != nil {
		return serviceError("failed to export applications", err)
	}

	if opts.Out == "" {
		if err := export.WriteCSV(e.formatter.Writer, apps); err != nil {
			return WrapExitError(ExitCommandError, "failed to write csv", err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, apps); err != nil {
		return WrapExitError(ExitCommandError, "failed to render csv", err)
	}
	if err := atomic.WriteFile(opts.Out, &buf); err != nil {
		return WrapExitError(ExitCommandError, "failed to write export file", err)
	}

	if opts.Format == "json" {
		return e.formatter.Success(map[string]any{"path": opts.Out, "count": len(apps)})
	}
	fmt.Fprintf(e.formatter.Writer, "Exported %d application(s) to %s\n", len(apps), opts.Out)
	return nil
}
