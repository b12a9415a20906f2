// Package mapper translates one Todoist task into the Taskwarrior schema:
// project hierarchy flattening, priority and date translation, recurrence
// grammar conversion, and label-to-tag mapping.
package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/taskport/pkg/todoist"
)

// Resolver looks up project and label records by id. The Todoist client
// satisfies this from its cache.
type Resolver interface {
	Project(id string) (*todoist.Project, error)
	Label(id string) (*todoist.Label, error)
}

// Payload is the Taskwarrior-side rendering of a Todoist task, used both
// for creation and for the (narrower) update.
type Payload struct {
	TodoistID   string
	Description string
	Project     string
	Tags        []string
	Priority    string // "", "L", "M", "H"
	Entry       time.Time
	Due         time.Time // zero when the task has no due date
	Recur       string
}

// priorityTable maps the Todoist 1..4 scale onto Taskwarrior's. Todoist's
// default (1) carries no priority at all on the Taskwarrior side.
var priorityTable = map[int]string{
	1: "",
	2: "L",
	3: "M",
	4: "H",
}

// Build computes the full creation payload for one task.
func Build(src Resolver, task todoist.Task, projectMap, tagMap Table) (Payload, error) {
	p := Payload{
		TodoistID:   task.ID,
		Description: task.Content,
		Priority:    TranslatePriority(task.Priority),
	}

	project, err := ProjectPath(src, task.ProjectID)
	if err != nil {
		return Payload{}, err
	}
	p.Project = projectMap.Apply(project)

	if task.AddedAt != "" {
		entry, err := todoist.ParseTime(task.AddedAt)
		if err != nil {
			return Payload{}, fmt.Errorf("task %s: %w", task.ID, err)
		}
		p.Entry = entry
	}

	if task.Due != nil && task.Due.Date != "" {
		due, err := todoist.ParseTime(task.Due.Date)
		if err != nil {
			return Payload{}, fmt.Errorf("task %s: %w", task.ID, err)
		}
		p.Due = due
	}

	tags, err := Tags(src, task.Labels, tagMap)
	if err != nil {
		return Payload{}, fmt.Errorf("task %s: %w", task.ID, err)
	}
	p.Tags = tags

	if task.Due != nil && task.Due.IsRecurring {
		recur, err := TranslateRecurrence(task.Due.String)
		if err != nil {
			// Leave the rest of the payload intact so the caller can
			// recover by prompting for a replacement value.
			return p, err
		}
		p.Recur = recur
	}

	return p, nil
}

// TranslatePriority converts the Todoist ordinal to a Taskwarrior priority.
func TranslatePriority(priority int) string {
	return priorityTable[priority]
}

// ProjectPath flattens a project's ancestor chain into a dot-joined path,
// root first. An unknown project id yields an empty path; a parent cycle is
// a data-integrity error.
func ProjectPath(src Resolver, projectID string) (string, error) {
	if projectID == "" {
		return "", nil
	}

	p, err := src.Project(projectID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", nil
	}

	names := []string{p.Name}
	visited := map[string]bool{p.ID: true}
	for p.ParentID != "" {
		parent, err := src.Project(p.ParentID)
		if err != nil {
			return "", err
		}
		if parent == nil {
			return "", fmt.Errorf("project %s references unknown parent %s", p.ID, p.ParentID)
		}
		if visited[parent.ID] {
			return "", fmt.Errorf("project hierarchy cycle at %s", parent.ID)
		}
		visited[parent.ID] = true
		names = append([]string{parent.Name}, names...)
		p = parent
	}

	return strings.Join(names, "."), nil
}

// Tags resolves label ids to names and applies the tag mapping table,
// dropping tags whose mapped value is empty. Source order is preserved.
func Tags(src Resolver, labelIDs []string, tagMap Table) ([]string, error) {
	var tags []string
	for _, id := range labelIDs {
		label, err := src.Label(id)
		if err != nil {
			return nil, err
		}
		if label == nil {
			return nil, fmt.Errorf("unknown label id %s", id)
		}
		tag := tagMap.Apply(label.Name)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
