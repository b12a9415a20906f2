package recon

import (
	"context"

	"github.com/harrisonrobin/taskport/pkg/taskwarrior"
	"github.com/harrisonrobin/taskport/pkg/todoist"
)

// RemoteCloser extends RemoteSource with the batched close commit the
// propagator needs.
type RemoteCloser interface {
	RemoteSource
	Commit(ctx context.Context) error
}

// Propagator pushes local completions back to Todoist: any Todoist task
// whose Taskwarrior twin is completed gets closed remotely. Closes are
// queued per task and committed once at the end of the batch.
type Propagator struct {
	Remote   RemoteCloser
	Local    LocalStore
	Reporter Reporter
}

// Run returns the number of remote tasks closed. Taskwarrior state is never
// mutated here.
func (p *Propagator) Run(ctx context.Context) (int, error) {
	tasks, err := p.Remote.Tasks(todoist.Filter{})
	if err != nil {
		return 0, err
	}

	summary := Summary{Total: len(tasks)}
	closed := 0
	for _, task := range tasks {
		if task.Checked {
			continue
		}
		local, err := p.Local.FindByTodoistID(task.ID)
		if err != nil {
			return closed, err
		}
		if local == nil || local.Status != taskwarrior.COMPLETED {
			continue
		}
		p.Remote.Close(task.ID)
		p.Reporter.Event(Event{Outcome: OutcomeClosed, TodoistID: task.ID, Description: task.Content})
		summary.count(OutcomeClosed)
		closed++
	}

	if err := p.Remote.Commit(ctx); err != nil {
		return closed, err
	}
	p.Reporter.Summary(summary)
	return closed, nil
}
