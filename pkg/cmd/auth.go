package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/taskport/pkg/auth"
	"github.com/harrisonrobin/taskport/pkg/ui"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Todoist",
	Long: `Authenticate with Todoist via OAuth.

Requires a credentials.json with the app's client_id and client_secret in
the taskport config directory. The obtained token is stored next to it and
used by the other commands when no API token is passed explicitly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		xdgConfigBase, err := auth.GetXdgHome()
		if err != nil {
			return err
		}

		tokenFile := filepath.Join(xdgConfigBase, auth.TokenFile)
		if _, err := os.Stat(tokenFile); err == nil {
			log.Printf("Removing existing token file at '%s'", tokenFile)
			if err := os.Remove(tokenFile); err != nil {
				return err
			}
		} else if !os.IsNotExist(err) {
			log.Printf("could not check token file '%s', error %v", tokenFile, err)
		}

		if _, err := auth.Authenticate(cmd.Context()); err != nil {
			return err
		}
		ui.Important("Authentication successful! Token saved to %s", tokenFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
