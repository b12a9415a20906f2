package cmd

import (
	"github.com/harrisonrobin/taskport/pkg/recon"
	"github.com/harrisonrobin/taskport/pkg/ui"
)

// consoleReporter renders reconciliation events in the terminal.
type consoleReporter struct{}

func (consoleReporter) Event(e recon.Event) {
	switch e.Outcome {
	case recon.OutcomeCreated:
		ui.Info("Created task (todoist_id=%s): %s", e.TodoistID, e.Description)
	case recon.OutcomeMatched:
		ui.Info("Already exists (todoist_id=%s)", e.TodoistID)
	case recon.OutcomeUpdated:
		ui.Info("Updated task (todoist_id=%s)", e.TodoistID)
	case recon.OutcomeClosed:
		ui.Info("Closed task (todoist_id=%s)", e.TodoistID)
	case recon.OutcomeSkipped:
		ui.Info("Skipped task (todoist_id=%s)", e.TodoistID)
	}
}

func (consoleReporter) Summary(s recon.Summary) {
	if s.Total == 0 {
		ui.Warn("No matching tasks found (are you using filters?)")
		return
	}
	ui.Important("Processed %d tasks: %d created, %d updated, %d closed, %d skipped, %d unchanged",
		s.Total, s.Created, s.Updated, s.Closed, s.Skipped, s.Matched)
}
