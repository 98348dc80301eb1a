package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/transformer1234/job-application-tracker/internal/application"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import applications from a YAML or JSON file",
		Long: `Import applications from a file holding a list of records.

The file is YAML (JSON is accepted too). Every record is validated before
anything is written, and all records are stored in one transaction: either
the whole file is imported or nothing is.

Example file:
  - company: Acme
    role: Backend Engineer
    date_applied: 2024-01-15
    status: Applied
  - company: Globex
    role: Designer
    date_applied: 2024-02-01
    location: Remote`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	drafts, err := readDrafts(path)
	if err != nil {
		return err
	}

	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	apps, err := e.svc.Import(cmd.Context(), drafts)
	if err != nil {
		return serviceError("failed to import applications", err)
	}

	if opts.Format == "json" {
		return e.formatter.Success(apps)
	}
	fmt.Fprintf(e.formatter.Writer, "Imported %d application(s)\n", len(apps))
	return nil
}

// readDrafts decodes a YAML list of drafts from path.
func readDrafts(path string) ([]application.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read import file", err)
	}

	var drafts []application.Draft
	if err := yaml.Unmarshal(data, &drafts); err != nil {
		if application.IsValidation(err) {
			return nil, serviceError("invalid import file", err)
		}
		return nil, WrapExitError(ExitCommandError, "failed to parse import file", err)
	}
	return drafts, nil
}
