package main

import (
	"context"
	"os/signal"
	"syscall"

	"riftcoach/internal/app"
	coachhttp "riftcoach/internal/transport/http"
	"riftcoach/internal/watcher"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the coaching API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(cfg)
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			if err := application.Defaults().Watch(ctx.Done()); err != nil {
				return err
			}
			return coachhttp.NewServer(cfg.HTTP.Addr, application).Start(ctx)
		},
	}
}

func newWatchCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and coach every new screenshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			watchDir := dir
			if watchDir == "" {
				watchDir = cfg.Watcher.Dir
			}
			if watchDir == "" {
				return cmd.Help()
			}
			application, err := app.New(cfg)
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return watcher.New(watchDir, application).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory to watch (overrides config)")
	return cmd
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
