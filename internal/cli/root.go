package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"thurianx/config"
	"thurianx/internal/container"
	"thurianx/internal/infrastructure/scheduler"
	"thurianx/internal/logger"
)

// NewRootCommand creates the root command.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "thurianx",
		Short: "Durian ripeness demo service",
		Long: `ThurianX serves a capture-and-classify page (and optionally a Telegram bot)
that shows a simulated durian ripeness classification for an uploaded photo.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newBotCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "thurianx %s (%s) built on %s\n", version, commit, date)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	}
}

// runtimeEnv is what every long-running command needs.
type runtimeEnv struct {
	cfg       *config.Config
	container *container.Container
	sweeper   *scheduler.Sweeper
}

func setup() (*runtimeEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}

	c, err := container.New(cfg, container.DefaultDeps(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to build services: %w", err)
	}

	sweeper, err := scheduler.NewSweeper(cfg.SweepSchedule, cfg.SessionTTL, c.SessionService)
	if err != nil {
		return nil, err
	}

	return &runtimeEnv{cfg: cfg, container: c, sweeper: sweeper}, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
