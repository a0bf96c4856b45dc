package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vefstofa/vefur/content"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the website",
	Long: `Serve the site pages, blog, sitemap and admin editor over HTTP.
With --content-dir the blog is read from Markdown files, which are
watched and reloaded on change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :3000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	app, dir, err := newApp(s)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := app.Handler(); err != nil {
		return err
	}

	if dir != nil && s.Watch {
		go func() {
			if err := content.Watch(ctx, dir.Root(), app.InvalidatePosts, app.Echo.Logger); err != nil {
				app.Echo.Logger.Warnf("content watcher stopped: %v", err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	app.Echo.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}
