package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"folio-cli/internal/site"

	"github.com/spf13/cobra"
)

func newContentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect, scaffold and validate page content",
	}
	cmd.AddCommand(newContentShowCmd(app))
	cmd.AddCommand(newContentInitCmd(app))
	cmd.AddCommand(newContentValidateCmd(app))
	return cmd
}

func newContentShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective content (built-in defaults overlaid with --content)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.loadContent()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": c,
				"_hints": []string{
					"folio content init ./site.yaml",
				},
			})
		},
	}
}

func newContentInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write the built-in content to a file as a starting point (.yaml or .json)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(args[0])
			if path == "" {
				return writeErr(cmd, errors.New("missing path"))
			}
			if _, err := os.Stat(path); err == nil && !force {
				return writeErr(cmd, existsError{path: path})
			}
			format := site.FormatForPath(path)
			b, err := site.Encode(site.Default(), format)
			if err != nil {
				return writeErr(cmd, err)
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := os.WriteFile(path, b, 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"path":   path,
					"format": format,
					"bytes":  len(b),
				},
				"_hints": []string{
					"folio --content " + path,
					"folio content validate " + path,
				},
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newContentValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a content file (defaults to --content)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(app.cfg.Content)
			if len(args) == 1 {
				path = strings.TrimSpace(args[0])
			}
			if path == "" {
				return writeErr(cmd, errors.New("missing path (pass one or set --content)"))
			}
			c, err := site.Load(path)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"path":     path,
					"valid":    true,
					"sections": len(c.Sections),
					"actions":  len(c.Actions),
				},
			})
		},
	}
}
