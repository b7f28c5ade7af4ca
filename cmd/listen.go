package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/telemux/internal/application"
)

func newListenCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Run the bridge daemon",
		Long:  "Long-polls the Telegram bot for new messages and injects routable ones into the matching tmux session. Runs until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chat, err := app.newChat()
			if err != nil {
				return err
			}

			audit, err := app.openAudit()
			if err != nil {
				return fmt.Errorf("open audit log: %w", err)
			}
			defer audit.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.OutOrStdout(), "telemux listening; reply as \"session-name: text\" to deliver")

			router := application.NewRouter(app.registry, app.injector, app.logger)
			listener := application.NewListener(chat, chat, router, app.cursor, audit, app.logger)

			err = listener.Run(ctx)
			if ctx.Err() != nil {
				app.logger.Info("shutting down")
				return nil
			}
			return err
		},
	}
}
