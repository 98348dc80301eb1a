package cli

import (
	"context"
	"io"
)

// Execute runs the CLI with args and returns the process exit code.
// Errors are reported through OutputFormatter: as a JSON envelope on stdout
// with --format json, as text on stderr otherwise.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd, opts := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: stderr, Verbose: opts.Verbose}
	if opts.Format == "json" {
		formatter.Writer = stdout
	}
	_ = formatter.Error(errorCode(err), err.Error(), nil)

	return GetExitCode(err)
}
