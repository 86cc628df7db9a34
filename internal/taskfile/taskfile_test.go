package taskfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/astralhq/polaris/internal/task"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseJSON(t *testing.T) {
	t.Parallel()

	t.Run("array of records", func(t *testing.T) {
		t.Parallel()
		recs, err := ParseJSON([]byte(`[
			{"id":"a","title":"Write report","due_date":"2026-09-03","estimated_hours":2,"importance":8,"dependencies":["b"]},
			{"title":"Untitled work"}
		]`))
		if err != nil {
			t.Fatalf("ParseJSON: %v", err)
		}
		if len(recs) != 2 {
			t.Fatalf("got %d records, want 2", len(recs))
		}

		tasks := task.NormalizeAll(recs)
		if tasks[0].ID != "a" || tasks[0].Importance != 8 {
			t.Errorf("tasks[0] = %+v, want id=a importance=8", tasks[0])
		}
		if tasks[1].ID != "1" {
			t.Errorf("tasks[1].ID = %q, want index fallback %q", tasks[1].ID, "1")
		}
	})

	t.Run("empty array", func(t *testing.T) {
		t.Parallel()
		recs, err := ParseJSON([]byte(`[]`))
		if err != nil {
			t.Fatalf("ParseJSON: %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("got %d records, want 0", len(recs))
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		_, err := ParseJSON([]byte(`[{"id":`))
		if !errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("error = %v, want ErrInvalidJSON", err)
		}
	})

	t.Run("non-array top level", func(t *testing.T) {
		t.Parallel()
		_, err := ParseJSON([]byte(`{"tasks":[]}`))
		if !errors.Is(err, ErrNotArray) {
			t.Fatalf("error = %v, want ErrNotArray", err)
		}
	})

	t.Run("null top level", func(t *testing.T) {
		t.Parallel()
		_, err := ParseJSON([]byte(`null`))
		if !errors.Is(err, ErrNotArray) {
			t.Fatalf("error = %v, want ErrNotArray", err)
		}
	})
}

func TestLoad_JSON(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "tasks.json", `[{"id":"x","importance":7}]`)

	recs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if got := task.Normalize(recs[0], 0); got.ID != "x" || got.Importance != 7 {
		t.Errorf("normalized = %+v, want id=x importance=7", got)
	}
}

func TestLoad_TOML(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "tasks.toml", `
[[tasks]]
id = "design"
title = "Design the schema"
due_date = "2026-09-10"
estimated_hours = 3.5
importance = 9

[[tasks]]
id = "build"
dependencies = ["design"]
`)

	recs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}

	tasks := task.NormalizeAll(recs)
	if tasks[0].ID != "design" || tasks[0].EstimatedHours != 3.5 || tasks[0].Importance != 9 {
		t.Errorf("tasks[0] = %+v, want design/3.5h/9", tasks[0])
	}
	if tasks[0].Due == nil {
		t.Error("tasks[0].Due = nil, want parsed date")
	}
	if len(tasks[1].Dependencies) != 1 || tasks[1].Dependencies[0] != "design" {
		t.Errorf("tasks[1].Dependencies = %v, want [design]", tasks[1].Dependencies)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Fatal("expected error for missing file, got nil")
		}
	})

	t.Run("bad TOML", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "tasks.toml", `[[tasks\n`)
		if _, err := Load(path); err == nil {
			t.Fatal("expected error for bad TOML, got nil")
		}
	})
}
