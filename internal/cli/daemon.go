package cli

import (
	"github.com/spf13/cobra"

	"github.com/prayerwatch/prayerwatch/internal/app"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the background reminder scheduler",
		Long:  "Fetch prayer times, schedule today's prayer and Jamaat reminders, and fire desktop notifications until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context())
		},
	}
}
