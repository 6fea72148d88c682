package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ccollicutt/chatlens/internal/logging"
	"github.com/ccollicutt/chatlens/internal/pipeline"
	"github.com/ccollicutt/chatlens/pkg/config"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// setup loads the configuration and builds the logger and pipeline shared
// by every command that reads a chat export.
func setup(cmd *cobra.Command, configPath string) (*config.Config, *zap.Logger, *pipeline.Pipeline, error) {
	cfg, err := config.LoadOrDefault(commandContext(cmd), configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, nil, err
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, p, nil
}

func addConfigFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "config", "c", "", "Configuration file (.yaml, .yml or .toml)")
}

// isTerminal reports whether w is a terminal. Styled output is only
// written to terminals.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
