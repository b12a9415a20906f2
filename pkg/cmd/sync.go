package cmd

import (
	"github.com/harrisonrobin/taskport/pkg/recon"
	"github.com/harrisonrobin/taskport/pkg/todoist"
	"github.com/harrisonrobin/taskport/pkg/ui"
	"github.com/spf13/cobra"
)

var (
	syncNoSync        bool
	syncNoTaskwarrior bool
	syncNoTodoist     bool
	syncMapProject    []string
	syncMapTag        []string
	syncFilterTask    string
	syncFilterProj    string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Two-way synchronization between Taskwarrior and Todoist",
	Long: `Two-way synchronization between Taskwarrior and Todoist.

Todoist tasks whose Taskwarrior counterpart is completed are closed on
Todoist (batched into a single commit), then the forward migration pass
runs. Content flows one way only, Todoist to Taskwarrior; completion state
flows both ways. The forward pass accepts the same project/tag mappings and
filters as migrate, so the two commands agree on where tasks land.

Known limitation: a task completed on both sides stays completed locally
even if it is later reopened on Todoist.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncNoSync, "no-sync", false,
		"skip refreshing the local Todoist cache")
	syncCmd.Flags().BoolVar(&syncNoTaskwarrior, "no-taskwarrior", false,
		"skip the Todoist to Taskwarrior migration pass")
	syncCmd.Flags().BoolVar(&syncNoTodoist, "no-todoist", false,
		"skip closing completed tasks on Todoist")
	syncCmd.Flags().StringArrayVarP(&syncMapProject, "map-project", "p", nil,
		"project mapping as SRC=DST, repeatable")
	syncCmd.Flags().StringArrayVarP(&syncMapTag, "map-tag", "t", nil,
		"tag mapping as SRC=DST, repeatable")
	syncCmd.Flags().StringVar(&syncFilterTask, "filter-task-id", "",
		"only process the Todoist task with this id")
	syncCmd.Flags().StringVar(&syncFilterProj, "filter-proj-id", "",
		"only process tasks in the Todoist project with this id")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	td, tw, err := newGateways(ctx)
	if err != nil {
		return err
	}

	if !syncNoSync {
		ui.Important("Syncing tasks with todoist")
		if err := td.Sync(ctx); err != nil {
			return err
		}
	}

	if !syncNoTodoist {
		ui.Important("Closing completed tasks on Todoist")
		p := &recon.Propagator{Remote: td, Local: tw, Reporter: consoleReporter{}}
		if _, err := p.Run(ctx); err != nil {
			return err
		}
	}

	if !syncNoTaskwarrior {
		r, err := buildReconciler(td, tw, syncMapProject, syncMapTag, nil)
		if err != nil {
			return err
		}
		if _, err := r.Run(todoist.Filter{TaskID: syncFilterTask, ProjectID: syncFilterProj}); err != nil {
			return err
		}
	}

	return nil
}
