package cli

import (
	"errors"

	"folio-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInboxCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List contact requests submitted from the TUI and the web page (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return writeErr(cmd, errors.New("--limit must be >= 0"))
			}
			inbox, err := app.openInbox(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer inbox.Close()

			reqs, err := inbox.List(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if reqs == nil {
				reqs = []store.ContactRequest{}
			}
			total, err := inbox.Count(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"count":    total,
					"requests": reqs,
				},
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max requests to show (0 = all)")
	return cmd
}
