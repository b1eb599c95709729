package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"familytree/internal/bootstrap"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "familytree",
		Short:         "Build a family tree and ask who descends from whom",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".env", "path to the env style config file")

	root.AddCommand(newServeCmd(), newReplCmd(), newRunCmd(), newWatchCmd())
	return root
}

func NewLogger(debug bool) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func setup() (*bootstrap.Config, *zap.SugaredLogger, error) {
	cfg, err := bootstrap.Setup(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup configuration: %w", err)
	}
	return cfg, NewLogger(cfg.LogDebug), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
