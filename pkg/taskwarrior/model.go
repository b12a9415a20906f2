package taskwarrior

import (
	"fmt"
	"strings"
	"time"
)

const (
	PENDING   = "pending"
	COMPLETED = "completed"
	DELETED   = "deleted"
)

// TodoistIDAttribute is the UDA recording which Todoist task a Taskwarrior
// task was created from. It is the sole binding between the two stores.
const TodoistIDAttribute = "todoist_id"

type CustomTime struct {
	time.Time
}

const taskwarriorTimeLayout = "20060102T150405Z" // YYYYMMDDTHHMMSSZ, 'Z' indicates UTC

// UnmarshalJSON implements the json.Unmarshaler interface for CustomTime.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`) // Remove surrounding quotes
	if s == "" || s == "0" {          // Handle empty string or "0" if Taskwarrior ever outputs it
		ct.Time = time.Time{} // Set to zero value
		return nil
	}

	t, err := time.Parse(taskwarriorTimeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse Taskwarrior time string '%s': %w", s, err)
	}
	ct.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface for CustomTime.
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte(`""`), nil // Export zero time as empty string
	}
	return []byte(`"` + ct.Time.Format(taskwarriorTimeLayout) + `"`), nil
}

// FormatTime renders a timestamp the way Taskwarrior accepts it on the
// command line.
func FormatTime(t time.Time) string {
	return t.UTC().Format(taskwarriorTimeLayout)
}

type Task struct {
	UUID        string      `json:"uuid"`
	Description string      `json:"description"`
	Entry       *CustomTime `json:"entry,omitempty"`
	Due         *CustomTime `json:"due,omitempty"`
	Status      string      `json:"status"`
	Project     string      `json:"project,omitempty"`
	Priority    string      `json:"priority,omitempty"`
	Recur       string      `json:"recur,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	TodoistID   string      `json:"todoist_id,omitempty"`
}
