package mapper

import (
	"fmt"
	"regexp"
	"strings"
)

// UnsupportedRecurrenceError marks a Todoist recurrence string that has no
// equivalent in Taskwarrior's recur grammar.
type UnsupportedRecurrenceError struct {
	Raw string
}

func (e *UnsupportedRecurrenceError) Error() string {
	return fmt.Sprintf("unsupported recurrence %q", e.Raw)
}

var (
	simpleRecur = map[string]string{
		"day":     "daily",
		"morning": "daily",
		"evening": "daily",
		"night":   "daily",
		"week":    "weekly",
		"month":   "monthly",
		"year":    "yearly",
		"workday": "weekdays",
		"weekday": "weekdays",
	}

	weekdays = map[string]bool{
		"monday": true, "mon": true,
		"tuesday": true, "tue": true, "tues": true,
		"wednesday": true, "wed": true,
		"thursday": true, "thu": true, "thurs": true,
		"friday": true, "fri": true,
		"saturday": true, "sat": true,
		"sunday": true, "sun": true,
	}

	intervalRecur = regexp.MustCompile(`^(\d+) (day|week|month|year)s?$`)
	otherRecur    = regexp.MustCompile(`^other (day|week|month|year)$`)
)

// TranslateRecurrence converts a Todoist natural-language recurrence
// ("every 3 days", "every other week", "every monday") into Taskwarrior's
// recur grammar. Constructs Taskwarrior cannot express, such as multiple
// weekdays or from-completion recurrence ("every!"), return
// UnsupportedRecurrenceError.
func TranslateRecurrence(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", nil
	}

	switch s {
	case "daily":
		return "daily", nil
	case "weekly":
		return "weekly", nil
	case "monthly":
		return "monthly", nil
	case "yearly", "annually":
		return "yearly", nil
	}

	// "every!" recurs from the completion date, which Taskwarrior's
	// due-anchored recurrence cannot represent.
	rest, ok := strings.CutPrefix(s, "every ")
	if !ok {
		return "", &UnsupportedRecurrenceError{Raw: raw}
	}

	if recur, ok := simpleRecur[rest]; ok {
		return recur, nil
	}
	if weekdays[rest] {
		return "weekly", nil
	}
	if m := intervalRecur.FindStringSubmatch(rest); m != nil {
		return fmt.Sprintf("%s %ss", m[1], m[2]), nil
	}
	if m := otherRecur.FindStringSubmatch(rest); m != nil {
		return fmt.Sprintf("2 %ss", m[1]), nil
	}

	return "", &UnsupportedRecurrenceError{Raw: raw}
}
