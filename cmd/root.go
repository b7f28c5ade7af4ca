package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "telemux",
		Short:         "telemux: reply to your tmux sessions from Telegram",
		Long:          "telemux bridges a Telegram bot to local tmux sessions. Messages shaped like \"session-name: text\" are typed into the named session as keystrokes, and the sender gets a delivery confirmation back.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newListenCmd(app),
		newSendCmd(app),
		newSessionsCmd(app),
		newStatusCmd(app),
		newDoctorCmd(app),
	)

	return rootCmd
}
