package cmd

import (
	"github.com/harrisonrobin/taskport/pkg/ui"
	"github.com/spf13/cobra"
)

var synchronizeCmd = &cobra.Command{
	Use:   "synchronize",
	Short: "Update the local Todoist task cache",
	Long: `Update the local Todoist task cache.

This command accesses Todoist via the API and updates the local cache
before exiting. This can be useful to pre-load the tasks, and means
migrate can be run without a network connection.

The cache is usually located at ~/.todoist-sync.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		td, _, err := newGateways(cmd.Context())
		if err != nil {
			return err
		}
		ui.Important("Syncing tasks with todoist")
		return td.Sync(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(synchronizeCmd)
}
