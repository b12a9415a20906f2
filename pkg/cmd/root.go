// Package cmd wires the CLI: flag parsing, gateway construction, and the
// rendering of reconciliation events on the terminal.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/harrisonrobin/taskport/pkg/auth"
	"github.com/harrisonrobin/taskport/pkg/config"
	"github.com/harrisonrobin/taskport/pkg/taskwarrior"
	"github.com/harrisonrobin/taskport/pkg/todoist"
	"github.com/harrisonrobin/taskport/pkg/ui"
	"github.com/spf13/cobra"
)

var (
	flagAPIToken string
	flagTaskrc   string
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:           "taskport",
	Short:         "Migrate and synchronize tasks between Todoist and Taskwarrior",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFlags(0)
		if !flagDebug {
			log.SetOutput(io.Discard)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIToken, "todoist-api-token", "",
		"Todoist API token (defaults to $TODOIST_API_TOKEN, then the stored OAuth token)")
	rootCmd.PersistentFlags().StringVar(&flagTaskrc, "taskrc", "",
		"Taskwarrior rc file (defaults to $TASKRC, then the config file)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error("Error: %v", err)
		os.Exit(1)
	}
}

// resolveToken picks the API token: flag, then environment, then the token
// obtained via `taskport auth`.
func resolveToken(ctx context.Context) (string, error) {
	if flagAPIToken != "" {
		return flagAPIToken, nil
	}
	if tok := os.Getenv("TODOIST_API_TOKEN"); tok != "" {
		return tok, nil
	}
	tok, err := auth.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("no API token: pass --todoist-api-token, set TODOIST_API_TOKEN, or run `taskport auth` (%w)", err)
	}
	return tok, nil
}

// resolveTaskrc picks the rc file: flag, then environment, then config.
func resolveTaskrc() (string, error) {
	if flagTaskrc != "" {
		return flagTaskrc, nil
	}
	if rc := os.Getenv("TASKRC"); rc != "" {
		return rc, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Taskrc, nil
}

// newGateways constructs the two collaborator clients for a run.
func newGateways(ctx context.Context) (*todoist.Client, *taskwarrior.Client, error) {
	token, err := resolveToken(ctx)
	if err != nil {
		return nil, nil, err
	}

	cacheDir, err := todoist.DefaultCacheDir()
	if err != nil {
		return nil, nil, err
	}
	cache, err := todoist.NewCache(cacheDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open todoist cache: %w", err)
	}

	taskrc, err := resolveTaskrc()
	if err != nil {
		return nil, nil, err
	}

	return todoist.NewClient(token, cache, nil), taskwarrior.NewClient(taskrc), nil
}
