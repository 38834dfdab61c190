package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"folio-cli/internal/config"
	"folio-cli/internal/format"
	"folio-cli/internal/logging"
	"folio-cli/internal/site"
	"folio-cli/internal/store"
	"folio-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string
	Content    string
	DataDir    string
	LogFile    string
	Verbose    bool
	PrettyJSON bool
	Format     string

	cfg    config.Config
	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:          "folio",
		Short:        "folio: a one-page studio site in your terminal, with a command palette",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse the page (ctrl+k opens the command palette)
  folio

  # Scriptable: list palette actions matching a filter
  folio actions git

  # Serve the page over HTTP
  folio web --addr 127.0.0.1:3335
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		_ = app.logger.Sync()
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default: $FOLIO_CONFIG or ~/.config/folio/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Content, "content", "", "YAML/JSON file overriding the built-in page content (watched for changes)")
	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", "", "Data directory for the contact inbox (default: $FOLIO_HOME or ~/.folio)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write logs to this file (the TUI defaults to <data-dir>/folio.log)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("FOLIO_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newActionsCmd(app))
	cmd.AddCommand(newContentCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newInboxCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newWebTUICmd(app))

	return cmd
}

// setup resolves config (file, env, then flags) and builds the logger.
func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return writeErr(cmd, err)
	}
	if v := strings.TrimSpace(app.Content); v != "" {
		cfg.Content = v
	}
	if v := strings.TrimSpace(app.DataDir); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(app.LogFile); v != "" {
		cfg.LogFile = v
	}
	if app.Verbose {
		cfg.Verbose = true
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return writeErr(cmd, err)
		}
		cfg.DataDir = d
	}
	// The TUI owns the terminal; its logs always go to a file.
	if cmd == cmd.Root() && cfg.LogFile == "" {
		cfg.LogFile = store.Store{Dir: cfg.DataDir}.LogPath()
	}
	app.cfg = cfg

	logger, err := logging.New(logging.Options{Path: cfg.LogFile, Verbose: cfg.Verbose})
	if err != nil {
		return writeErr(cmd, err)
	}
	app.logger = logger.With(zap.String("cmd", cmd.Name()))
	return nil
}

func (app *App) loadContent() (site.Content, error) {
	path := strings.TrimSpace(app.cfg.Content)
	if path == "" {
		return site.Default(), nil
	}
	c, err := site.Load(path)
	if err != nil {
		return site.Content{}, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

func (app *App) openInbox(ctx context.Context) (*store.Inbox, error) {
	return store.Store{Dir: app.cfg.DataDir}.Open(ctx)
}

func runTUI(cmd *cobra.Command, app *App) error {
	c, err := app.loadContent()
	if err != nil {
		return writeErr(cmd, err)
	}

	inbox, err := app.openInbox(cmd.Context())
	if err != nil {
		// The page still works without persistence.
		app.logger.Warn("open inbox", zap.Error(err))
		inbox = nil
	} else {
		defer inbox.Close()
	}

	app.logger.Info("tui start", zap.String("content", app.cfg.Content), zap.String("dataDir", app.cfg.DataDir))
	err = tui.Run(cmd.Context(), tui.Options{
		Content:     c,
		ContentPath: app.cfg.Content,
		Inbox:       inbox,
		Logger:      app.logger,
		Theme:       app.cfg.TUI.Theme,
		Glyphs:      app.cfg.TUI.Glyphs,
		Mouse:       app.cfg.TUI.Mouse,
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
