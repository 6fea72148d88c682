package server

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/ccollicutt/chatlens/internal/pipeline"
	"github.com/ccollicutt/chatlens/pkg/config"
)

// Module returns the fx module for the upload server, composing the
// pipeline, the registry and the HTTP server with its lifecycle hooks.
func Module(cfg *config.Config, logger *zap.Logger) fx.Option {
	return fx.Module("server",
		fx.Supply(cfg, logger),
		fx.Provide(
			providePipeline,
			provideRegistry,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

// App builds the fx application for the serve command.
func App(cfg *config.Config, logger *zap.Logger, extra ...fx.Option) *fx.App {
	opts := []fx.Option{
		Module(cfg, logger),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
	}
	return fx.New(append(opts, extra...)...)
}

func providePipeline(cfg *config.Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	return pipeline.New(cfg, logger)
}

func provideRegistry(cfg *config.Config) *Registry {
	return NewRegistry(cfg.Server.MaxUploads)
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Bind before returning so address errors fail startup.
			if err := srv.Listen(); err != nil {
				return err
			}
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("API server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil {
				logger.Warn("error stopping API server", zap.Error(err))
			}
			logger.Info("server stopped")
			return nil
		},
	})
}
