package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/chatlens/internal/logging"
	"github.com/ccollicutt/chatlens/internal/server"
	"github.com/ccollicutt/chatlens/pkg/config"
)

// ServeOptions holds command-line options for the serve command.
type ServeOptions struct {
	Config string
	Addr   string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload API",
		Long: `Run an HTTP server that parses uploaded chat exports and serves
their statistics as JSON.

Endpoints:
  GET    /health
  POST   /api/v1/uploads                  (multipart field "file" or raw body)
  GET    /api/v1/uploads/{id}
  GET    /api/v1/uploads/{id}/report      (?user=)
  GET    /api/v1/uploads/{id}/records     (?author=, ?group_by=)
  DELETE /api/v1/uploads/{id}

Uploads are kept in memory. The oldest is evicted past server.max_uploads.
Logs are written to stderr as JSON. Stops on SIGINT or SIGTERM.

Example:
  chatlens serve
  chatlens serve --addr 127.0.0.1:9000 -c chatlens.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	addConfigFlag(cmd, &opts.Config)
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	ctx := commandContext(cmd)

	cfg, err := config.LoadOrDefault(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		JSON:   true,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app := server.App(cfg, logger)

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	select {
	case sig := <-app.Wait():
		logger.Info("shutting down", zap.String("signal", fmt.Sprint(sig.Signal)))
	case <-ctx.Done():
		logger.Info("shutting down", zap.Error(ctx.Err()))
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}
	return nil
}
