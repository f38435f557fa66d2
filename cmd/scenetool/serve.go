package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Faultbox/scene3d/internal/logger"
	"github.com/Faultbox/scene3d/internal/preview"
	"github.com/Faultbox/scene3d/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve scenes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.cfg.Source.Root
			if root == "" {
				root = "."
			}
			loader, cleanup := a.loader(cmd.Context(), root)
			defer cleanup()

			srv, err := server.New(server.Config{
				Loader:   loader,
				Renderer: preview.NewRenderer(a.cfg.Preview.PixelsPerMeter),
				Defaults: a.cfg.Pipeline.Settings(),
				Logger:   logger.Named("server"),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = srv.ListenAndServe(ctx, a.cfg.Server.Addr)
			if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
