package cli

import (
	"context"
	"strings"

	"folio-cli/internal/site"
	"folio-cli/internal/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string
	var open bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the page over HTTP (Datastar SSE for counters, activity and contact)",
		Long: strings.TrimSpace(`
Serve the one-page site from a local HTTP server.

The page carries the same command palette as the TUI (Ctrl/Cmd+K). Counters,
the activity shuffle and the contact form are driven over server-sent events.
Contact requests land in the same inbox the TUI writes to.
`),
		Example: strings.TrimSpace(`
folio web
folio web --addr :3335 --open=false
folio --content ./site.yaml web
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.loadContent()
			if err != nil {
				return writeErr(cmd, err)
			}
			listenAddr := firstNonEmpty(addr, app.cfg.Web.Addr)

			inbox, err := app.openInbox(cmd.Context())
			if err != nil {
				app.logger.Warn("open inbox", zap.Error(err))
				inbox = nil
			} else {
				defer inbox.Close()
			}

			srv, err := web.NewServer(web.ServerConfig{
				Addr:    listenAddr,
				Content: c,
				Inbox:   inbox,
				Logger:  app.logger,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			l, err := listen(srv.Addr(), open, "/")
			if err != nil {
				return writeErr(cmd, err)
			}
			l.announce(cmd, app, "web", map[string]any{
				"content": app.cfg.Content,
				"dataDir": app.cfg.DataDir,
			})

			var workers []func(context.Context) error
			if path := strings.TrimSpace(app.cfg.Content); path != "" {
				workers = append(workers, func(ctx context.Context) error {
					return site.Watch(ctx, path, func(next site.Content, err error) {
						if err != nil {
							app.logger.Warn("content reload", zap.Error(err))
							return
						}
						app.logger.Info("content reloaded", zap.String("path", path))
						srv.SetContent(next)
					})
				})
			}

			if err := serve(cmd.Context(), app.logger, l, srv.Handler(), workers...); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port; default from config, 127.0.0.1:3335)")
	cmd.Flags().BoolVar(&open, "open", true, "Open the page in your default browser")
	return cmd
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
