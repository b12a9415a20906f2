package cmd

import (
	"os"

	"github.com/harrisonrobin/taskport/pkg/interactive"
	"github.com/harrisonrobin/taskport/pkg/mapper"
	"github.com/harrisonrobin/taskport/pkg/recon"
	"github.com/harrisonrobin/taskport/pkg/todoist"
	"github.com/harrisonrobin/taskport/pkg/ui"
	"github.com/spf13/cobra"
)

var (
	migrateNoSync      bool
	migrateMapProject  []string
	migrateMapTag      []string
	migrateFilterTask  string
	migrateFilterProj  string
	migrateInteractive bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate tasks from Todoist to Taskwarrior",
	Long: `Migrate tasks from Todoist to Taskwarrior.

By default this command synchronizes with the Todoist servers first and
then migrates all tasks. Pass --no-sync to skip synchronization.

Use --map-project to change or remove the project. Project hierarchies are
period-delimited during conversion. In the following, 'Work Errands' and
'House Errands' both become 'errands', 'Programming.Open Source' becomes
'oss', and the project is removed entirely when it is 'Taxes':

    -p 'Work Errands'=errands
    -p 'House Errands'=errands
    -p 'Programming.Open Source'=oss
    -p Taxes=

This command can be run multiple times without duplicating tasks. Each
migrated task carries its Todoist id in the todoist_id attribute, which is
how reruns find it again.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateNoSync, "no-sync", false,
		"skip refreshing the local Todoist cache")
	migrateCmd.Flags().StringArrayVarP(&migrateMapProject, "map-project", "p", nil,
		"translate project SRC=DST; empty DST unsets the project")
	migrateCmd.Flags().StringArrayVarP(&migrateMapTag, "map-tag", "t", nil,
		"translate tag SRC=DST; empty DST removes the tag")
	migrateCmd.Flags().StringVar(&migrateFilterTask, "filter-task-id", "",
		"only import the task matching the given id")
	migrateCmd.Flags().StringVar(&migrateFilterProj, "filter-proj-id", "",
		"only import tasks in the project matching the given id")
	migrateCmd.Flags().BoolVarP(&migrateInteractive, "interactive", "i", false,
		"review and edit each task before it is created")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	td, tw, err := newGateways(ctx)
	if err != nil {
		return err
	}

	if !migrateNoSync {
		ui.Important("Syncing tasks with todoist")
		if err := td.Sync(ctx); err != nil {
			return err
		}
	}

	var prompter recon.Prompter
	if migrateInteractive {
		prompter = interactive.NewLoop(os.Stdin, os.Stdout)
	}

	r, err := buildReconciler(td, tw, migrateMapProject, migrateMapTag, prompter)
	if err != nil {
		return err
	}

	_, err = r.Run(todoist.Filter{TaskID: migrateFilterTask, ProjectID: migrateFilterProj})
	return err
}

// buildReconciler assembles the forward pass from command-line flag values.
// Both migrate and sync go through here so they share the same mapping
// semantics.
func buildReconciler(remote recon.RemoteSource, local recon.LocalStore, mapProject, mapTag []string, prompter recon.Prompter) (*recon.Reconciler, error) {
	projectMap, err := mapper.ParseTable(mapProject)
	if err != nil {
		return nil, err
	}
	tagMap, err := mapper.ParseTable(mapTag)
	if err != nil {
		return nil, err
	}
	return &recon.Reconciler{
		Remote:     remote,
		Local:      local,
		ProjectMap: projectMap,
		TagMap:     tagMap,
		Prompter:   prompter,
		Reporter:   consoleReporter{},
	}, nil
}
