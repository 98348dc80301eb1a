package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/transformer1234/job-application-tracker/internal/api"
	"github.com/transformer1234/job-application-tracker/internal/config"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the application records over HTTP.

The server opens the database (creating it if it doesn't exist) and runs
until SIGINT or SIGTERM, then drains in-flight requests for up to
shutdown_timeout.

Example:
  tracker serve
  tracker serve --addr 127.0.0.1:9000 --db ./apps.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts, cmd)
		},
	}

	cmd.Flags().String(config.KeyAddr, config.DefaultAddr, "listen address")

	return cmd
}

func runServe(opts *RootOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if !opts.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(e.svc, api.Options{
		DefaultPageSize: e.cfg.DefaultPageSize,
		MaxPageSize:     e.cfg.MaxPageSize,
		Logger:          slog.Default(),
	})

	ln, err := net.Listen("tcp", e.cfg.Addr)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to listen", err)
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
			// Parent context cancelled (e.g., from test)
		}
	}()

	slog.Info("server starting", "addr", ln.Addr().String(), "db", e.cfg.DB)
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", ln.Addr())

	if err := api.Serve(ctx, ln, router, e.cfg.ShutdownTimeout); err != nil {
		return WrapExitError(ExitCommandError, "server error", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
