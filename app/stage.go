// Package app holds what every pipeline stage binary shares: configuration, logging and
// the cobra command around a stage.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papernu/paper/scrape/config"
)

type Stage struct {
	Config *config.Config
	Logger *zap.Logger
}

type StageFunc func(ctx context.Context, cmd *cobra.Command, stage *Stage) error

// Run loads configPath, builds the logger and calls fn with a context that is cancelled
// on SIGINT or SIGTERM. Errors from fn are logged before being returned.
func Run(ctx context.Context, configPath string, cmd *cobra.Command, fn StageFunc) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fn(ctx, cmd, &Stage{Config: cfg, Logger: logger}); err != nil {
		logger.Error("Stage failed", zap.String("stage", cmd.Name()), zap.Error(err))
		return err
	}
	return nil
}

// NewCommand wraps fn in a command with a --config flag. Stage flags are added by the caller.
func NewCommand(use, short string, fn StageFunc) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), configPath, cmd, fn)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "YAML config file (environment and defaults otherwise)")
	return cmd
}

// Execute runs cmd and exits 1 on failure.
func Execute(cmd *cobra.Command) {
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
