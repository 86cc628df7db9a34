// Package task defines the validated in-memory task model and the
// normalization rules that turn loosely-typed wire records into it.
// All defaulting lives here so the rest of the engine can assume
// well-formed values.
package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Defaults applied during normalization. Wire records may omit or garble
// any optional field; these named constants are the single source of truth
// for what they fall back to.
const (
	DefaultTitle          = "Untitled"
	DefaultEstimatedHours = 1.0
	DefaultImportance     = 5
)

// Importance is conventionally rated on a 1-10 scale. Raw values outside
// this range fall back to DefaultImportance at normalization time.
const (
	ImportanceMin = 1
	ImportanceMax = 10
)

// DueDateLayout is the calendar date format accepted on the wire.
const DueDateLayout = "2006-01-02"

// Record is the loosely-typed wire form of a task, as decoded from a JSON
// or TOML payload. Every field is optional and may carry the wrong type;
// Normalize coerces or defaults each one rather than failing.
type Record struct {
	ID             any `json:"id" toml:"id"`
	Title          any `json:"title" toml:"title"`
	DueDate        any `json:"due_date" toml:"due_date"`
	EstimatedHours any `json:"estimated_hours" toml:"estimated_hours"`
	Importance     any `json:"importance" toml:"importance"`
	Dependencies   any `json:"dependencies" toml:"dependencies"`
}

// Task is one validated, normalized task. Tasks are immutable for the
// duration of a single analyze/suggest call and carry no state across calls.
type Task struct {
	ID             string
	Title          string
	Due            *time.Time // UTC midnight of the due calendar date; nil means no deadline
	EstimatedHours float64
	Importance     int
	Dependencies   []string
	Index          int // position in the input sequence, used for stable ordering
}

// Normalize converts a wire record at the given input position into a Task,
// applying the package defaults for any field that is absent or unusable.
// It never fails: a task with no usable fields at all becomes
// {ID: index, Title: "Untitled", EstimatedHours: 1, Importance: 5}.
func Normalize(rec Record, index int) Task {
	t := Task{
		Title:          DefaultTitle,
		EstimatedHours: DefaultEstimatedHours,
		Importance:     DefaultImportance,
		Index:          index,
	}

	if id := strings.TrimSpace(coerceString(rec.ID)); id != "" {
		t.ID = id
	} else {
		// Missing ids default to the input position, mirroring how
		// positional task lists are commonly submitted.
		t.ID = strconv.Itoa(index)
	}

	if title := strings.TrimSpace(coerceString(rec.Title)); title != "" {
		t.Title = title
	}

	if due, ok := coerceDate(rec.DueDate); ok {
		t.Due = &due
	}

	if hours, ok := coerceFloat(rec.EstimatedHours); ok && hours > 0 {
		t.EstimatedHours = hours
	}

	if imp, ok := coerceInt(rec.Importance); ok && imp >= ImportanceMin && imp <= ImportanceMax {
		t.Importance = imp
	}

	t.Dependencies = coerceStringSlice(rec.Dependencies)

	return t
}

// NormalizeAll normalizes a full input sequence, preserving order.
func NormalizeAll(recs []Record) []Task {
	tasks := make([]Task, len(recs))
	for i, rec := range recs {
		tasks[i] = Normalize(rec, i)
	}
	return tasks
}

// coerceString extracts a string from a wire value. Numeric ids are
// rendered in their decimal form so integer and string ids interoperate.
func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

// coerceFloat extracts a float from a wire value, accepting numeric strings.
func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// coerceInt extracts an integer from a wire value, truncating floats and
// accepting numeric strings.
func coerceInt(v any) (int, bool) {
	f, ok := coerceFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// coerceDate extracts a calendar date. Strings must match DueDateLayout;
// native time values (e.g. TOML dates) are truncated to their calendar day.
// Anything else is treated as "no deadline".
func coerceDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case string:
		parsed, err := time.ParseInLocation(DueDateLayout, strings.TrimSpace(d), time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	case time.Time:
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
	default:
		return time.Time{}, false
	}
}

// coerceStringSlice extracts a dependency list, dropping entries that are
// empty after trimming. Numeric entries are rendered as decimal strings to
// match coerceString's id handling.
func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			items = make([]any, len(ss))
			for i, s := range ss {
				items[i] = s
			}
		} else {
			return nil
		}
	}
	var out []string
	for _, item := range items {
		if s := strings.TrimSpace(coerceString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// String returns a short human-readable summary, useful in logs and errors.
func (t Task) String() string {
	return fmt.Sprintf("%s (%q)", t.ID, t.Title)
}
