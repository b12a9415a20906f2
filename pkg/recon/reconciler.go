// Package recon decides, per Todoist task, whether to create, update, skip,
// or close its Taskwarrior counterpart, and pushes completions back the
// other way. Collaborators are injected as small interfaces so runs are
// testable without a network or a task binary.
package recon

import (
	"errors"

	"github.com/harrisonrobin/taskport/pkg/mapper"
	"github.com/harrisonrobin/taskport/pkg/taskwarrior"
	"github.com/harrisonrobin/taskport/pkg/todoist"
)

// ErrAborted is returned when the operator aborts an interactive run. Tasks
// already processed stay committed.
var ErrAborted = errors.New("run aborted by operator")

// RemoteSource is the Todoist side of a run.
type RemoteSource interface {
	Tasks(filter todoist.Filter) ([]todoist.Task, error)
	Project(id string) (*todoist.Project, error)
	Label(id string) (*todoist.Label, error)
	Close(id string)
}

// LocalStore is the Taskwarrior side of a run.
type LocalStore interface {
	FindByTodoistID(todoistID string) (*taskwarrior.Task, error)
	Add(p mapper.Payload) (*taskwarrior.Task, error)
	Update(task *taskwarrior.Task, p mapper.Payload) error
	Close(uuid string) error
}

// Prompter is the human-in-the-loop hook. Review may edit the payload
// before a create; a false accept means skip, ErrAborted ends the run.
// Recurrence asks for a replacement when a recurrence string cannot be
// translated.
type Prompter interface {
	Review(p mapper.Payload) (mapper.Payload, bool, error)
	Recurrence(raw string) (string, error)
}

// Outcome classifies what happened to one task during a pass.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeMatched Outcome = "matched"
	OutcomeUpdated Outcome = "updated"
	OutcomeClosed  Outcome = "closed"
	OutcomeSkipped Outcome = "skipped"
)

// Event is emitted once per task.
type Event struct {
	Outcome     Outcome
	TodoistID   string
	Description string
}

// Summary totals a full pass.
type Summary struct {
	Total   int
	Created int
	Matched int
	Updated int
	Closed  int
	Skipped int
}

func (s *Summary) count(o Outcome) {
	switch o {
	case OutcomeCreated:
		s.Created++
	case OutcomeMatched:
		s.Matched++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeClosed:
		s.Closed++
	case OutcomeSkipped:
		s.Skipped++
	}
}

// Reporter receives per-task events and the run summary. The CLI renders
// them; tests record them.
type Reporter interface {
	Event(e Event)
	Summary(s Summary)
}

// Reconciler drives the forward migration pass.
type Reconciler struct {
	Remote     RemoteSource
	Local      LocalStore
	ProjectMap mapper.Table
	TagMap     mapper.Table
	Prompter   Prompter // nil outside interactive mode
	Reporter   Reporter
}

// Run evaluates every matching Todoist task independently. Running it again
// over an unchanged task set mutates nothing: existing mappings are found
// by foreign key and either left alone or rewritten with the same values.
func (r *Reconciler) Run(filter todoist.Filter) (Summary, error) {
	tasks, err := r.Remote.Tasks(filter)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Total: len(tasks)}
	if len(tasks) == 0 {
		r.Reporter.Summary(summary)
		return summary, nil
	}

	for _, task := range tasks {
		outcome, err := r.reconcile(task)
		if err != nil {
			return summary, err
		}
		for _, o := range outcome {
			r.Reporter.Event(Event{Outcome: o, TodoistID: task.ID, Description: task.Content})
		}
		// Only the terminal outcome counts toward the summary.
		summary.count(outcome[len(outcome)-1])
	}

	r.Reporter.Summary(summary)
	return summary, nil
}

// reconcile applies the transition rules for one task. A task can yield two
// outcomes (matched then closed); the last one is the terminal one.
func (r *Reconciler) reconcile(task todoist.Task) ([]Outcome, error) {
	local, err := r.Local.FindByTodoistID(task.ID)
	if err != nil {
		return nil, err
	}

	if local == nil {
		return r.create(task)
	}

	// Closing takes precedence over field updates: a task completed on
	// Todoist is closed as-is, never also rewritten in the same pass.
	if task.Checked {
		if local.Status == taskwarrior.PENDING {
			if err := r.Local.Close(local.UUID); err != nil {
				return nil, err
			}
			return []Outcome{OutcomeMatched, OutcomeClosed}, nil
		}
		return []Outcome{OutcomeMatched}, nil
	}

	if local.Status == taskwarrior.PENDING {
		payload, err := r.buildPayload(task)
		if err != nil {
			return nil, err
		}
		if err := r.Local.Update(local, payload); err != nil {
			return nil, err
		}
		return []Outcome{OutcomeUpdated}, nil
	}

	// Completed locally: terminal. A reopened Todoist task is not brought
	// back to pending here (known limitation, kept from the original tool).
	return []Outcome{OutcomeMatched}, nil
}

func (r *Reconciler) create(task todoist.Task) ([]Outcome, error) {
	payload, err := r.buildPayload(task)
	if err != nil {
		return nil, err
	}

	// Already completed on Todoist: create then close immediately, so the
	// close has an identifier to act on and no pending state is visible.
	if task.Checked {
		created, err := r.Local.Add(payload)
		if err != nil {
			return nil, err
		}
		if err := r.Local.Close(created.UUID); err != nil {
			return nil, err
		}
		return []Outcome{OutcomeClosed}, nil
	}

	if r.Prompter != nil {
		edited, accepted, err := r.Prompter.Review(payload)
		if err != nil {
			return nil, err
		}
		if !accepted {
			return []Outcome{OutcomeSkipped}, nil
		}
		payload = edited
	}

	if _, err := r.Local.Add(payload); err != nil {
		return nil, err
	}
	return []Outcome{OutcomeCreated}, nil
}

// buildPayload runs the field mapper, recovering from an untranslatable
// recurrence by prompting for a replacement. Without a prompter that error
// is fatal.
func (r *Reconciler) buildPayload(task todoist.Task) (mapper.Payload, error) {
	payload, err := mapper.Build(r.Remote, task, r.ProjectMap, r.TagMap)
	if err != nil {
		var unsupported *mapper.UnsupportedRecurrenceError
		if !errors.As(err, &unsupported) || r.Prompter == nil {
			return mapper.Payload{}, err
		}
		recur, perr := r.Prompter.Recurrence(unsupported.Raw)
		if perr != nil {
			return mapper.Payload{}, perr
		}
		payload.Recur = recur
	}
	return payload, nil
}
