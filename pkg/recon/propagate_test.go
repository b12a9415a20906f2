package recon

import (
	"context"
	"reflect"
	"testing"

	"github.com/harrisonrobin/taskport/pkg/taskwarrior"
	"github.com/harrisonrobin/taskport/pkg/todoist"
)

func TestPropagatorClosesCompletedLocals(t *testing.T) {
	remote := simpleRemote(
		todoist.Task{ID: "1", Content: "completed locally"},
		todoist.Task{ID: "2", Content: "still pending locally"},
		todoist.Task{ID: "3", Content: "already checked remotely", Checked: true},
		todoist.Task{ID: "4", Content: "not mapped at all"},
	)
	store := newFakeStore()
	store.tasks["1"] = &taskwarrior.Task{
		UUID: "uuid-1", Status: taskwarrior.COMPLETED, TodoistID: "1",
	}
	store.tasks["2"] = &taskwarrior.Task{
		UUID: "uuid-2", Status: taskwarrior.PENDING, TodoistID: "2",
	}
	store.tasks["3"] = &taskwarrior.Task{
		UUID: "uuid-3", Status: taskwarrior.COMPLETED, TodoistID: "3",
	}
	rep := &recordingReporter{}
	p := &Propagator{Remote: remote, Local: store, Reporter: rep}

	closed, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if closed != 1 {
		t.Errorf("Expected 1 closed, got %d", closed)
	}
	if !reflect.DeepEqual(remote.closed, []string{"1"}) {
		t.Errorf("Expected remote close of task 1 only, got %v", remote.closed)
	}
	if remote.commits != 1 {
		t.Errorf("Expected exactly one commit for the batch, got %d", remote.commits)
	}
	if len(store.ops) != 0 {
		t.Errorf("Propagator must not mutate the local store, got ops %v", store.ops)
	}
	if !reflect.DeepEqual(rep.outcomes(), []Outcome{OutcomeClosed}) {
		t.Errorf("Expected [closed], got %v", rep.outcomes())
	}
	if len(rep.summaries) != 1 {
		t.Fatalf("Expected a run summary, got %d", len(rep.summaries))
	}
	want := Summary{Total: 4, Closed: 1}
	if rep.summaries[0] != want {
		t.Errorf("Summary = %+v, want %+v", rep.summaries[0], want)
	}
}

func TestPropagatorCommitsOnceWhenNothingToClose(t *testing.T) {
	remote := simpleRemote(todoist.Task{ID: "1", Content: "unmapped"})
	store := newFakeStore()
	rep := &recordingReporter{}
	p := &Propagator{Remote: remote, Local: store, Reporter: rep}

	closed, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if closed != 0 {
		t.Errorf("Expected nothing closed, got %d", closed)
	}
	if len(remote.closed) != 0 {
		t.Errorf("Expected no remote closes, got %v", remote.closed)
	}
	if len(rep.summaries) != 1 || rep.summaries[0].Closed != 0 {
		t.Errorf("Expected an empty summary, got %v", rep.summaries)
	}
}

func TestPropagatorDuplicateMappingIsFatal(t *testing.T) {
	remote := simpleRemote(todoist.Task{ID: "1", Content: "x"})
	store := newFakeStore()
	store.findErr = &taskwarrior.DuplicateMappingError{TodoistID: "1", Count: 2}
	p := &Propagator{Remote: remote, Local: store, Reporter: &recordingReporter{}}

	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("Expected duplicate mapping to abort the pass")
	}
}
