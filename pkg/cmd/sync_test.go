package cmd

import (
	"testing"

	"github.com/harrisonrobin/taskport/pkg/mapper"
	"github.com/harrisonrobin/taskport/pkg/taskwarrior"
	"github.com/harrisonrobin/taskport/pkg/todoist"
)

type stubRemote struct {
	tasks    []todoist.Task
	projects map[string]todoist.Project
	labels   map[string]todoist.Label
}

func (r *stubRemote) Tasks(filter todoist.Filter) ([]todoist.Task, error) {
	var out []todoist.Task
	for _, t := range r.tasks {
		if filter.TaskID != "" && t.ID != filter.TaskID {
			continue
		}
		if filter.ProjectID != "" && t.ProjectID != filter.ProjectID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *stubRemote) Project(id string) (*todoist.Project, error) {
	if p, ok := r.projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *stubRemote) Label(id string) (*todoist.Label, error) {
	if l, ok := r.labels[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *stubRemote) Close(id string) {}

type stubStore struct {
	tasks map[string]*taskwarrior.Task
}

func (s *stubStore) FindByTodoistID(todoistID string) (*taskwarrior.Task, error) {
	return s.tasks[todoistID], nil
}

func (s *stubStore) Add(p mapper.Payload) (*taskwarrior.Task, error) {
	t := &taskwarrior.Task{
		UUID:        "uuid-" + p.TodoistID,
		Description: p.Description,
		Project:     p.Project,
		Status:      taskwarrior.PENDING,
		TodoistID:   p.TodoistID,
	}
	s.tasks[p.TodoistID] = t
	return t, nil
}

func (s *stubStore) Update(task *taskwarrior.Task, p mapper.Payload) error {
	stored := s.tasks[task.TodoistID]
	stored.Description = p.Description
	stored.Project = p.Project
	return nil
}

func (s *stubStore) Close(uuid string) error { return nil }

func TestSyncCommandCarriesMappingAndFilterFlags(t *testing.T) {
	for _, name := range []string{"map-project", "map-tag", "filter-task-id", "filter-proj-id"} {
		if syncCmd.Flags().Lookup(name) == nil {
			t.Errorf("sync is missing the --%s flag", name)
		}
	}
}

// A sync run must apply the same project mappings as migrate; otherwise its
// update pass rewrites projects migrate had already remapped.
func TestSyncPassKeepsMappedProject(t *testing.T) {
	remote := &stubRemote{
		tasks: []todoist.Task{{
			ID:        "1",
			Content:   "Buy milk",
			ProjectID: "p2",
			AddedAt:   "2023-01-01T10:00:00Z",
		}},
		projects: map[string]todoist.Project{
			"p1": {ID: "p1", Name: "Work"},
			"p2": {ID: "p2", Name: "Errands", ParentID: "p1"},
		},
	}
	store := &stubStore{tasks: map[string]*taskwarrior.Task{
		"1": {
			UUID:        "uuid-1",
			Description: "Buy milk",
			Project:     "errands",
			Status:      taskwarrior.PENDING,
			TodoistID:   "1",
		},
	}}

	r, err := buildReconciler(remote, store, []string{"Work.Errands=errands"}, nil, nil)
	if err != nil {
		t.Fatalf("buildReconciler: %v", err)
	}
	if _, err := r.Run(todoist.Filter{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := store.tasks["1"].Project; got != "errands" {
		t.Errorf("project after run = %q, want %q", got, "errands")
	}
}

func TestBuildReconcilerRejectsMalformedMapping(t *testing.T) {
	remote := &stubRemote{}
	store := &stubStore{tasks: map[string]*taskwarrior.Task{}}

	if _, err := buildReconciler(remote, store, []string{"no-separator"}, nil, nil); err == nil {
		t.Error("expected an error for a mapping without '='")
	}
	if _, err := buildReconciler(remote, store, nil, []string{"=dst"}, nil); err == nil {
		t.Error("expected an error for a tag mapping with an empty source")
	}
}
