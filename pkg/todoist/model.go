package todoist

import (
	"fmt"
	"strings"
	"time"
)

// Task is one item from the Todoist sync snapshot.
type Task struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	ProjectID string   `json:"project_id"`
	Priority  int      `json:"priority"` // 1..4, 4 is highest (inverted vs the UI)
	Labels    []string `json:"labels"`
	AddedAt   string   `json:"added_at"`
	Due       *Due     `json:"due,omitempty"`
	Checked   bool     `json:"checked"`
}

// Due is a Todoist due specification. String keeps the natural-language
// form ("every 3 days"), Date the resolved occurrence.
type Due struct {
	Date        string `json:"date"`
	String      string `json:"string"`
	IsRecurring bool   `json:"is_recurring"`
}

// Project is a Todoist project; ParentID is empty at the root.
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
}

// Label is a Todoist label.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// dateLayouts covers the timestamp shapes the sync API emits: full RFC3339
// for added_at, and date-only or floating datetime for due dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses a Todoist timestamp string.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty todoist timestamp")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized todoist timestamp %q", s)
}
