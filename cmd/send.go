package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newSendCmd pushes a one-off message to the configured chat, the
// outbound counterpart of the listen loop's confirmations.
func newSendCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send <text>...",
		Short: "Send a message to the configured Telegram chat",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := app.newChat()
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if err := chat.Notify(cmd.Context(), text); err != nil {
				return fmt.Errorf("send message: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "message sent")
			return nil
		},
	}
}
