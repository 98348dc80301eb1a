package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/transformer1234/job-application-tracker/internal/config"
	"github.com/transformer1234/job-application-tracker/internal/service"
	"github.com/transformer1234/job-application-tracker/internal/store"
)

// env is the per-invocation runtime shared by record commands.
type env struct {
	cfg       config.Config
	store     *store.Store
	svc       *service.Service
	formatter *OutputFormatter
}

// openEnv resolves configuration, configures logging and opens the store.
// Callers must call close.
func openEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(opts.ConfigFile, cmd.Flags())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose, cfg)
	slog.SetDefault(logger)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	formatter.VerboseLog("Opening database %s", cfg.DB)
	st, err := store.Open(cfg.DB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	return &env{
		cfg:       cfg,
		store:     st,
		svc:       service.New(st, service.WithLogger(logger)),
		formatter: formatter,
	}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// newLogger builds the text logger on w. --verbose forces debug; otherwise
// the configured log_level applies.
func newLogger(w io.Writer, verbose bool, cfg config.Config) *slog.Logger {
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
