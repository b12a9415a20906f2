package mapper

import (
	"fmt"
	"strings"
)

// Table is an ordered set of SRC=DST rename rules for project paths or
// tags. A matched empty destination means "remove".
type Table struct {
	order []string
	rules map[string]string
}

// ParseTable builds a Table from SRC=DST pairs as given on the command
// line. A repeated source key is a configuration error.
func ParseTable(pairs []string) (Table, error) {
	t := Table{rules: make(map[string]string, len(pairs))}
	for _, pair := range pairs {
		src, dst, ok := strings.Cut(pair, "=")
		if !ok {
			return Table{}, fmt.Errorf("mapping %q is not in SRC=DST form", pair)
		}
		if src == "" {
			return Table{}, fmt.Errorf("mapping %q has an empty source", pair)
		}
		if _, dup := t.rules[src]; dup {
			return Table{}, fmt.Errorf("duplicate mapping source %q", src)
		}
		t.order = append(t.order, src)
		t.rules[src] = dst
	}
	return t, nil
}

// Apply translates s through the table. Exact match only: an unmatched
// value passes through unchanged, a matched value becomes its destination
// (possibly empty).
func (t Table) Apply(s string) string {
	if dst, ok := t.rules[s]; ok {
		return dst
	}
	return s
}

// Len reports the number of rules.
func (t Table) Len() int {
	return len(t.order)
}
