package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/glaze/internal/logger"
	"github.com/alexisbeaulieu97/glaze/internal/server"
	"github.com/alexisbeaulieu97/glaze/internal/session"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	source sourceFlags
	listen string
}

func newServeCmd(root *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live browser preview",
		Long: `Serve the generated page over HTTP. Browsers connected to /ws can edit
parameters, switch presets and tabs; every change is pushed to all of them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, root, opts)
		},
	}
	opts.source.register(cmd)
	cmd.Flags().StringVar(&opts.listen, "listen", "", "Address to listen on (default from settings)")

	return cmd
}

func runServe(cmd *cobra.Command, root *rootFlags, opts *serveOptions) error {
	settings, err := loadSettings(root)
	if err != nil {
		return err
	}
	log, err := newCommandLogger(cmd, root, settings)
	if err != nil {
		return err
	}

	initial, presetName, err := opts.source.resolve(settings)
	if err != nil {
		return err
	}
	ctrl, err := session.New(initial, session.Options{Logger: log})
	if err != nil {
		return newCommandError("serve", "building the bundle", err, "Fix the reported parameter and try again.")
	}
	if presetName != "" {
		if err := ctrl.ApplyPreset(presetName); err != nil {
			return newCommandError("serve", "applying preset "+presetName, err, "")
		}
	}

	addr := opts.listen
	if addr == "" {
		addr = settings.Listen
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return newCommandError("serve", addr, err, "Pick a free address with --listen.")
	}

	handler := server.New(ctrl, log)
	defer handler.Close()

	return serveUntilDone(cmd.Context(), listener, handler, log)
}

// serveUntilDone serves on listener until ctx is cancelled, then shuts down
// gracefully.
func serveUntilDone(ctx context.Context, listener net.Listener, handler http.Handler, log *logger.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	log.WithFields(map[string]any{"url": "http://" + listener.Addr().String()}).Info("preview server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return newCommandError("serve", listener.Addr().String(), err, "")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return newCommandError("serve", "shutting down", err, "")
	}
	log.Info("preview server stopped")
	return nil
}
