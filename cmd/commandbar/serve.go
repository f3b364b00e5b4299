package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/commandbar/internal/cli"
	httpAdapter "github.com/aretw0/commandbar/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves session trees and their toolbars over HTTP:

  GET    /sessions/{id}/toolbar    derived toolbar
  PUT    /sessions/{id}/state      replace the tree
  PATCH  /sessions/{id}/state      merge a partial tree
  POST   /sessions/{id}/activate   activate an item by key path
  GET    /sessions/{id}/events     server-sent toolbar updates
  GET    /metrics                  Prometheus metrics (when enabled)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			app.Config.Server.Addr = addr
		}
		if statePath, _ := cmd.Flags().GetString("state"); statePath != "" {
			sessionID, _ := cmd.Flags().GetString("session")
			if _, err := app.StartSession(cmd.Context(), sessionID, statePath); err != nil {
				return err
			}
		}

		opts := []httpAdapter.Option{httpAdapter.WithLogger(app.Logger)}
		if app.Metrics != nil {
			opts = append(opts, httpAdapter.WithMetrics(app.Metrics.Handler()))
		}

		srv := &http.Server{
			Addr:              app.Config.Server.Addr,
			Handler:           httpAdapter.NewHandler(app.Engine, app.Sessions, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		serverErrors := make(chan error, 1)
		go func() {
			app.Logger.Info("Starting commandbar server", "addr", srv.Addr, "store", app.Config.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return err

		case <-sigCtx.Done():
			app.Logger.Info("Shutting down", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				app.Logger.Warn("Graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
			app.Logger.Info("commandbar server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
