package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/telemux/internal/adapters/render/status"
	"github.com/bnema/telemux/internal/domain"
)

const recentTrafficLimit = 10

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show bridge state, live sessions, and recent traffic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := app.registry.Sessions(cmd.Context())
			if err != nil {
				return fmt.Errorf("query tmux sessions: %w", err)
			}

			cursor, err := app.cursor.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load cursor: %w", err)
			}

			recent, err := loadRecentTraffic(cmd, app)
			if err != nil {
				return err
			}

			snap := statusadapter.Snapshot{
				Configured:   app.cfg.botToken != "" && app.cfg.chatID != "",
				StatePath:    app.cfg.statePath,
				LastUpdateID: cursor,
				Sessions:     sessions,
				Recent:       recent,
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}

			rendered := statusadapter.Render(snap, statusadapter.RenderOptions{Now: app.clock.Now()})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

func loadRecentTraffic(cmd *cobra.Command, app *app) ([]domain.AuditEntry, error) {
	audit, err := app.openAudit()
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer audit.Close()

	recent, err := audit.Recent(cmd.Context(), recentTrafficLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent traffic: %w", err)
	}
	return recent, nil
}
