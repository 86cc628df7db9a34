// Package taskfile loads task records from JSON and TOML sources. The HTTP
// handlers, CLI commands, and MCP tools all funnel their input through the
// same parsing so every surface tolerates (and defaults) the same things.
package taskfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/astralhq/polaris/internal/task"
)

// ErrInvalidJSON is returned when a payload is not well-formed JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// ErrNotArray is returned when a JSON payload is well-formed but its top
// level is not an array of task objects.
var ErrNotArray = errors.New("expected a JSON array of tasks")

// tomlDocument is the shape of a TOML task file: a [[tasks]] table array.
type tomlDocument struct {
	Tasks []task.Record `toml:"tasks"`
}

// ParseJSON decodes a JSON array of task records.
func ParseJSON(data []byte) ([]task.Record, error) {
	var recs []task.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return nil, ErrNotArray
	}
	// A top-level null unmarshals into a nil slice without error. It is
	// still not an array; the empty result belongs to `[]` alone.
	if recs == nil {
		return nil, ErrNotArray
	}
	return recs, nil
}

// Load reads task records from a file, dispatching on extension: .toml
// parses a [[tasks]] document, anything else is treated as a JSON array.
func Load(path string) ([]task.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taskfile: read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var doc tomlDocument
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("taskfile: parse %s: %w", path, err)
		}
		return doc.Tasks, nil
	}

	recs, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("taskfile: parse %s: %w", path, err)
	}
	return recs, nil
}
