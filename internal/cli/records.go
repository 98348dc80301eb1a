package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/transformer1234/job-application-tracker/internal/application"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Company  string
	Role     string
	Location string
	Date     string
	Status   string
	Notes    string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new application",
		Long: `Record a new job application.

--date defaults to today; --status defaults to Applied. Any status string is
accepted.

Example:
  tracker add --company Acme --role "Backend Engineer"
  tracker add --company Globex --role Designer --date 2024-02-01 --status Interview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Company, "company", "", "company name (required)")
	cmd.Flags().StringVar(&opts.Role, "role", "", "role title (required)")
	cmd.Flags().StringVar(&opts.Location, "location", "", "job location")
	cmd.Flags().StringVar(&opts.Date, "date", "", "date applied, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.Status, "status", application.StatusApplied, "application status")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	date := application.DateOf(time.Now())
	if opts.Date != "" {
		d, err := application.ParseDate(opts.Date)
		if err != nil {
			return serviceError("invalid --date", err)
		}
		date = d
	}

	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	app, err := e.svc.Create(cmd.Context(), application.Draft{
		Company:     opts.Company,
		Role:        opts.Role,
		Location:    opts.Location,
		DateApplied: date,
		Status:      opts.Status,
		Notes:       opts.Notes,
	})
	if err != nil {
		return serviceError("failed to add application", err)
	}

	if opts.Format == "json" {
		return e.formatter.Success(app)
	}
	fmt.Fprintf(e.formatter.Writer, "Added application %d: %s, %s\n", app.ID, app.Company, app.Role)
	return nil
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			e, err := openEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.close()

			app, err := e.svc.Get(cmd.Context(), id)
			if err != nil {
				return serviceError("failed to get application", err)
			}

			if rootOpts.Format == "json" {
				return e.formatter.Success(app)
			}
			printApplication(e.formatter.Writer, app)
			return nil
		},
	}
}

// NewSetStatusCommand creates the set-status command.
func NewSetStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Change the status of an application",
		Long: `Change the status of an application.

Any status string is accepted; Applied, Interview, Rejected and Offer are
the conventional values.

Example:
  tracker set-status 3 Interview`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			e, err := openEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.svc.UpdateStatus(cmd.Context(), id, args[1]); err != nil {
				return serviceError("failed to update status", err)
			}

			if rootOpts.Format == "json" {
				return e.formatter.Success(map[string]any{"id": id, "status": args[1]})
			}
			fmt.Fprintf(e.formatter.Writer, "Application %d status set to %s\n", id, args[1])
			return nil
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an application",
		Long: `Delete an application.

The remaining applications are renumbered 1..N in their existing order, so
ids after the deleted one shift down by one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			e, err := openEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.svc.Delete(cmd.Context(), id); err != nil {
				return serviceError("failed to delete application", err)
			}

			if rootOpts.Format == "json" {
				return e.formatter.Success(map[string]any{"deleted": id})
			}
			fmt.Fprintf(e.formatter.Writer, "Deleted application %d\n", id)
			return nil
		},
	}
}

// NewCompactCommand creates the compact command.
func NewCompactCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compact",
		Short: "Renumber application ids to 1..N",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.close()

			n, err := e.svc.Compact(cmd.Context())
			if err != nil {
				return serviceError("failed to compact", err)
			}

			if rootOpts.Format == "json" {
				return e.formatter.Success(map[string]int{"count": n})
			}
			fmt.Fprintf(e.formatter.Writer, "Renumbered %d application(s)\n", n)
			return nil
		},
	}
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count applications by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.close()

			stats, err := e.svc.Stats(cmd.Context())
			if err != nil {
				return serviceError("failed to compute stats", err)
			}

			if rootOpts.Format == "json" {
				return e.formatter.Success(stats)
			}
			printStats(e.formatter.Writer, stats)
			return nil
		},
	}
}

// parseID parses a positional record id.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q: must be an integer", arg))
	}
	return id, nil
}
