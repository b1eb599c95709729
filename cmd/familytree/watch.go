package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"familytree/internal/adapters"
	"familytree/internal/domain/event"
	"familytree/internal/render"
	"familytree/internal/repository"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print every redraw a running server publishes to Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.RedisUrl == "" {
				return errors.New("watch needs REDIS_URL")
			}

			ctx, cancel := context.WithCancel(commandContext(cmd))
			defer cancel()
			go handleShutdown(ctx, cancel, logger)

			redisAdapter := adapters.NewAdapterRedis(cfg, logger)
			if err := redisAdapter.Init(ctx); err != nil {
				return err
			}
			defer redisAdapter.Close(context.Background())

			events, err := repository.NewRedisEventPublisher(redisAdapter.GetClient(), cfg.EventPrefix, logger).Subscribe(ctx)
			if err != nil {
				return err
			}
			logger.Infof("watching %s", repository.EventsChannel(cfg.EventPrefix))
			return printEvents(cmd.OutOrStdout(), events)
		},
	}
}

// printEvents draws each received tree until the channel closes.
func printEvents(out io.Writer, events <-chan event.TreeEvent) error {
	for ev := range events {
		if _, err := fmt.Fprintf(out, "%s (session %s, %d people)\n", ev.Command, ev.SessionID, ev.Size); err != nil {
			return err
		}
		if err := render.Text(out, ev.Tree); err != nil {
			return err
		}
	}
	return nil
}
