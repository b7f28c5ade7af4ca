package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List tmux sessions the bridge can deliver to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := app.registry.Sessions(cmd.Context())
			if err != nil {
				return fmt.Errorf("query tmux sessions: %w", err)
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no tmux sessions running")
				return nil
			}
			for _, name := range sessions {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
