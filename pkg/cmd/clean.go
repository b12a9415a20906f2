package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/harrisonrobin/taskport/pkg/todoist"
	"github.com/harrisonrobin/taskport/pkg/ui"
	"github.com/spf13/cobra"
)

var cleanYes bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the data stored in the Todoist task cache",
	Long: `Remove the data stored in the Todoist task cache.

The cache is usually located at ~/.todoist-sync.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := todoist.DefaultCacheDir()
		if err != nil {
			return err
		}
		cache, err := todoist.NewCache(dir)
		if err != nil {
			return err
		}

		if !cleanYes {
			fmt.Printf("Are you sure you want to delete %s? [y/N] ", cache.Dir())
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() {
				return scanner.Err()
			}
			answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if answer != "y" && answer != "yes" {
				ui.Warn("Aborted")
				return nil
			}
		}

		if err := cache.Clean(); err != nil {
			return err
		}
		ui.Important("Removed %s", cache.Dir())
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}
