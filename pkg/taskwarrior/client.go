package taskwarrior

import (
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/harrisonrobin/taskport/pkg/mapper"
)

// DuplicateMappingError reports two or more Taskwarrior tasks carrying the
// same todoist_id. This means the store is corrupted; it is never resolved
// automatically.
type DuplicateMappingError struct {
	TodoistID string
	Count     int
}

func (e *DuplicateMappingError) Error() string {
	return fmt.Sprintf("%d taskwarrior tasks carry todoist_id=%s, expected at most one",
		e.Count, e.TodoistID)
}

// runner executes a task invocation and returns its stdout. Swapped out in
// tests.
type runner func(args ...string) ([]byte, error)

func execTask(args ...string) ([]byte, error) {
	cmd := exec.Command("task", args...)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("taskwarrior command failed: exit code %d, %s, stderr: %s",
				exitErr.ExitCode(), err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("taskwarrior command failed: %w", err)
	}
	return output, nil
}

type Client struct {
	taskrc string
	run    runner
}

func NewClient(taskrc string) *Client {
	return &Client{taskrc: taskrc, run: execTask}
}

// baseArgs are prepended to every invocation: the rc file, the todoist_id
// UDA definition, and overrides that keep task from prompting or firing
// hooks mid-run.
func (c *Client) baseArgs() []string {
	return []string{
		"rc:" + c.taskrc,
		"rc.uda.todoist_id.type=string",
		"rc.uda.todoist_id.label=Todoist ID",
		"rc.hooks=0",
		"rc.confirmation=no",
		"rc.recurrence.confirmation=no",
		"rc.verbose=nothing",
	}
}

// FindByTodoistID returns the task bound to the given Todoist id, nil if
// none exists, or DuplicateMappingError if more than one matches.
func (c *Client) FindByTodoistID(todoistID string) (*Task, error) {
	filter := fmt.Sprintf("%s:%s", TodoistIDAttribute, todoistID)
	args := append(c.baseArgs(), filter, "export")

	output, err := c.run(args...)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	if err := json.Unmarshal(output, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal taskwarrior output: %w", err)
	}

	switch len(tasks) {
	case 0:
		return nil, nil
	case 1:
		return &tasks[0], nil
	default:
		return nil, &DuplicateMappingError{TodoistID: todoistID, Count: len(tasks)}
	}
}

// Add creates a task from the payload and returns it, re-queried by its
// Todoist id so the caller has the assigned uuid.
func (c *Client) Add(p mapper.Payload) (*Task, error) {
	args := append(c.baseArgs(), "add", p.Description)
	args = append(args, fmt.Sprintf("%s:%s", TodoistIDAttribute, p.TodoistID))
	if p.Project != "" {
		args = append(args, "project:"+p.Project)
	}
	if p.Priority != "" {
		args = append(args, "priority:"+p.Priority)
	}
	if !p.Entry.IsZero() {
		args = append(args, "entry:"+FormatTime(p.Entry))
	}
	if !p.Due.IsZero() {
		args = append(args, "due:"+FormatTime(p.Due))
	}
	if p.Recur != "" {
		args = append(args, "recur:"+p.Recur)
	}
	for _, tag := range p.Tags {
		args = append(args, "+"+tag)
	}

	if _, err := c.run(args...); err != nil {
		return nil, err
	}
	task, err := c.FindByTodoistID(p.TodoistID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task with todoist_id=%s not found after add", p.TodoistID)
	}
	return task, nil
}

// Update overwrites the description, due date, and project of an existing
// task. The remaining payload fields are deliberately left alone so local
// edits to tags, priority, and recurrence survive re-migration.
func (c *Client) Update(task *Task, p mapper.Payload) error {
	args := append(c.baseArgs(), "uuid:"+task.UUID, "modify", p.Description)
	args = append(args, "project:"+p.Project)
	if p.Due.IsZero() {
		args = append(args, "due:")
	} else {
		args = append(args, "due:"+FormatTime(p.Due))
	}

	_, err := c.run(args...)
	return err
}

// Close marks a task done.
func (c *Client) Close(uuid string) error {
	args := append(c.baseArgs(), "uuid:"+uuid, "done")
	_, err := c.run(args...)
	return err
}
