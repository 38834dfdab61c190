package cli

import (
	"strings"

	"folio-cli/internal/webtui"

	"github.com/spf13/cobra"
)

func newWebTUICmd(app *App) *cobra.Command {
	var addr string
	var open bool

	cmd := &cobra.Command{
		Use:   "webtui",
		Short: "Run the TUI in your browser (xterm.js over a websocket PTY)",
		Long: strings.TrimSpace(`
Serve a browser terminal that runs the folio TUI in a server-side PTY.

Each browser tab gets its own TUI process, started with the same --content,
--data-dir and --config as this command.
`),
		Example: strings.TrimSpace(`
folio webtui
folio webtui --addr 127.0.0.1:3334 --open=false
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr:   firstNonEmpty(addr, app.cfg.WebTUI.Addr),
				Args:   app.childArgs(),
				Logger: app.logger,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			l, err := listen(srv.Addr(), open, "/terminal")
			if err != nil {
				return writeErr(cmd, err)
			}
			l.announce(cmd, app, "webtui", nil)

			if err := serve(cmd.Context(), app.logger, l, srv.Handler()); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port; default from config, 127.0.0.1:3334)")
	cmd.Flags().BoolVar(&open, "open", true, "Open the terminal in your default browser")
	return cmd
}

// childArgs forwards the settings a PTY child needs to render the same page.
func (app *App) childArgs() []string {
	var args []string
	if v := strings.TrimSpace(app.ConfigPath); v != "" {
		args = append(args, "--config", v)
	}
	if v := strings.TrimSpace(app.cfg.Content); v != "" {
		args = append(args, "--content", v)
	}
	if v := strings.TrimSpace(app.cfg.DataDir); v != "" {
		args = append(args, "--data-dir", v)
	}
	return args
}
