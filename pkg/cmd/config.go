package cmd

import (
	"fmt"

	"github.com/harrisonrobin/taskport/pkg/config"
	"github.com/harrisonrobin/taskport/pkg/ui"
	"github.com/spf13/cobra"
)

var configSetTaskrc string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update the stored configuration",
	Long: `Show or update the stored configuration.

Without flags the current settings are printed. --set-taskrc records a
default Taskwarrior rc file so --taskrc does not have to be passed on
every invocation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if configSetTaskrc != "" {
			cfg.Taskrc = configSetTaskrc
			if err := config.Save(cfg); err != nil {
				return err
			}
			ui.Important("Default taskrc set to: %s", cfg.Taskrc)
			return nil
		}

		fmt.Printf("taskrc: %s\n", cfg.Taskrc)
		return nil
	},
}

func init() {
	configCmd.Flags().StringVar(&configSetTaskrc, "set-taskrc", "",
		"record PATH as the default Taskwarrior rc file")
	rootCmd.AddCommand(configCmd)
}
