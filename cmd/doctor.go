package cmd

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/telemux/internal/domain"
)

const botCheckTimeout = 15 * time.Second

// newDoctorCmd verifies the pieces the bridge depends on: the tmux
// binary, credentials, and reachability of the Telegram API.
func newDoctorCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check tmux and Telegram connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			failed := false

			if _, err := exec.LookPath("tmux"); err != nil {
				failed = true
				fmt.Fprintln(out, "[-] tmux binary not found in PATH")
			} else {
				sessions, err := app.registry.Sessions(cmd.Context())
				switch {
				case err != nil:
					failed = true
					fmt.Fprintf(out, "[-] tmux query failed: %v\n", err)
				case len(sessions) == 0:
					fmt.Fprintln(out, "[+] tmux reachable (no sessions running)")
				default:
					fmt.Fprintf(out, "[+] tmux reachable (%d sessions)\n", len(sessions))
				}
			}

			if app.cfg.botToken == "" || app.cfg.chatID == "" {
				fmt.Fprintln(out, "[-] telegram credentials not configured (set TELEMUX_BOT_TOKEN and TELEMUX_CHAT_ID)")
				return domain.ErrMissingCredentials
			}
			fmt.Fprintln(out, "[+] telegram credentials present")

			chat, err := app.newChat()
			if err != nil {
				return err
			}

			var botName string
			checkErr := runDoctorCheck(cmd.Context(), cmd.OutOrStdout(), func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, botCheckTimeout)
				defer cancel()
				name, err := chat.Me(ctx)
				if err != nil {
					return err
				}
				botName = name
				return nil
			})
			if checkErr != nil {
				failed = true
				fmt.Fprintf(out, "[-] telegram check failed: %v\n", checkErr)
			} else {
				fmt.Fprintf(out, "[+] telegram bot @%s reachable\n", botName)
			}

			if failed {
				return fmt.Errorf("doctor found problems")
			}
			fmt.Fprintln(out, "all checks passed")
			return nil
		},
	}
}
