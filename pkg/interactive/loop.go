// Package interactive implements the per-task review step of an
// interactive migration: the computed payload is shown to the operator, who
// can accept it, skip the task, edit individual fields, or abort the run.
package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/harrisonrobin/taskport/pkg/mapper"
	"github.com/harrisonrobin/taskport/pkg/recon"
	"github.com/harrisonrobin/taskport/pkg/taskwarrior"
)

const helpText = `  a, <enter>  accept task as shown
  s           skip this task
  d           edit description
  t           edit tags
  p           edit project
  i           edit priority (H, M, L, or empty)
  r           edit recurrence (todoist style, e.g. "every 3 days")
  q           abort the whole run
  h, ?        show this help`

// Loop reads operator commands line by line. It blocks on input with no
// timeout; the only ways out are accept, skip, and abort.
type Loop struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewLoop(in io.Reader, out io.Writer) *Loop {
	return &Loop{in: bufio.NewScanner(in), out: out}
}

// Review presents the payload and runs the command loop until the operator
// accepts or skips. Editing commands mutate the payload and re-present it.
// Abort (and exhausted input) returns recon.ErrAborted.
func (l *Loop) Review(p mapper.Payload) (mapper.Payload, bool, error) {
	l.render(p)
	for {
		line, err := l.readLine("[a/s/d/t/p/i/r/q/h] ")
		if err != nil {
			return p, false, err
		}

		switch strings.TrimSpace(line) {
		case "a", "":
			return p, true, nil
		case "s":
			return p, false, nil
		case "d":
			text, err := l.readLine("Description: ")
			if err != nil {
				return p, false, err
			}
			if text != "" {
				p.Description = text
			}
		case "t":
			text, err := l.readLine("Tags (space-separated): ")
			if err != nil {
				return p, false, err
			}
			p.Tags = strings.Fields(text)
		case "p":
			text, err := l.readLine("Project: ")
			if err != nil {
				return p, false, err
			}
			p.Project = strings.TrimSpace(text)
		case "i":
			if err := l.editPriority(&p); err != nil {
				return p, false, err
			}
		case "r":
			recur, err := l.readRecurrence()
			if err != nil {
				return p, false, err
			}
			p.Recur = recur
		case "q":
			return p, false, recon.ErrAborted
		case "h", "?":
			fmt.Fprintln(l.out, helpText)
			continue
		default:
			fmt.Fprintf(l.out, "Unknown command %q (h for help)\n", strings.TrimSpace(line))
			continue
		}

		l.render(p)
	}
}

// Recurrence asks for a replacement after an untranslatable recurrence
// string, re-prompting until the input parses. Empty input drops the
// recurrence.
func (l *Loop) Recurrence(raw string) (string, error) {
	fmt.Fprintf(l.out, "Unsupported recurrence: %q. Please enter a valid value\n", raw)
	return l.readRecurrence()
}

func (l *Loop) readRecurrence() (string, error) {
	for {
		text, err := l.readLine("Recurrence (todoist style, empty for none): ")
		if err != nil {
			return "", err
		}
		recur, err := mapper.TranslateRecurrence(text)
		if err == nil {
			return recur, nil
		}
		var unsupported *mapper.UnsupportedRecurrenceError
		if errors.As(err, &unsupported) {
			fmt.Fprintf(l.out, "Still unsupported: %q\n", text)
			continue
		}
		return "", err
	}
}

func (l *Loop) editPriority(p *mapper.Payload) error {
	for {
		text, err := l.readLine("Priority (H/M/L or empty): ")
		if err != nil {
			return err
		}
		switch strings.ToUpper(strings.TrimSpace(text)) {
		case "", "NONE":
			p.Priority = ""
			return nil
		case "H", "M", "L":
			p.Priority = strings.ToUpper(strings.TrimSpace(text))
			return nil
		default:
			fmt.Fprintf(l.out, "Invalid priority %q\n", text)
		}
	}
}

func (l *Loop) render(p mapper.Payload) {
	fmt.Fprintf(l.out, "\nTodoist ID:  %s\n", p.TodoistID)
	fmt.Fprintf(l.out, "Description: %s\n", p.Description)
	fmt.Fprintf(l.out, "Project:     %s\n", p.Project)
	fmt.Fprintf(l.out, "Tags:        %s\n", strings.Join(p.Tags, " "))
	fmt.Fprintf(l.out, "Priority:    %s\n", p.Priority)
	if !p.Entry.IsZero() {
		fmt.Fprintf(l.out, "Entry:       %s\n", taskwarrior.FormatTime(p.Entry))
	}
	if !p.Due.IsZero() {
		fmt.Fprintf(l.out, "Due:         %s\n", taskwarrior.FormatTime(p.Due))
	}
	if p.Recur != "" {
		fmt.Fprintf(l.out, "Recur:       %s\n", p.Recur)
	}
}

// readLine prints a prompt and reads one line. Exhausted input aborts the
// run rather than spinning.
func (l *Loop) readLine(prompt string) (string, error) {
	fmt.Fprint(l.out, prompt)
	if !l.in.Scan() {
		if err := l.in.Err(); err != nil {
			return "", err
		}
		return "", recon.ErrAborted
	}
	return l.in.Text(), nil
}
