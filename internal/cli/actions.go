package cli

import (
	"strings"

	"folio-cli/internal/palette"

	"github.com/spf13/cobra"
)

type effectOut struct {
	Kind   string `json:"kind"`
	Target string `json:"target,omitempty"`
}

func newActionsCmd(app *App) *cobra.Command {
	var run bool
	var open bool

	cmd := &cobra.Command{
		Use:   "actions [filter]",
		Short: "List palette actions matching a filter, or run the first match",
		Long: strings.TrimSpace(`
List the command palette's actions, filtered the same way the palette filters:
a case-insensitive substring of the title or description, in source order.

With --run, the first match is executed as if Enter were pressed in the palette
and the resulting effects are printed.
`),
		Example: strings.TrimSpace(`
folio actions
folio actions sprint --run
folio actions github --run --open
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.loadContent()
			if err != nil {
				return writeErr(cmd, err)
			}
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}

			p := palette.New(c.Actions, nil)
			p.Activate()
			p.Input(filter)
			visible := p.Session().Visible
			if visible == nil {
				visible = []palette.Action{}
			}

			if !run {
				hints := []string{}
				if len(visible) > 0 {
					hints = append(hints, "folio actions "+quoteArg(filter)+" --run")
				}
				return writeOut(cmd, app, map[string]any{
					"data": map[string]any{
						"filter":  filter,
						"actions": visible,
					},
					"_hints": hints,
				})
			}

			if len(visible) == 0 {
				return writeErr(cmd, errNoMatch(filter))
			}
			action := visible[0]
			effects := p.HandleKey(palette.KeyEnter)
			out := make([]effectOut, 0, len(effects))
			opened := false
			for _, e := range effects {
				out = append(out, effectOut{Kind: e.Kind.String(), Target: e.Target})
				if open && e.Kind == palette.EffectOpenExternal {
					if err := openPath(e.Target); err != nil {
						return writeErr(cmd, err)
					}
					opened = true
				}
			}
			app.logger.Debug("action run", zapAction(action)...)
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"action":  action,
					"effects": out,
					"opened":  opened,
				},
			})
		},
	}

	cmd.Flags().BoolVar(&run, "run", false, "Execute the first match")
	cmd.Flags().BoolVar(&open, "open", false, "With --run: open external destinations in the default browser")
	return cmd
}

func quoteArg(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\"'") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}
