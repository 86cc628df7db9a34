package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/astralhq/polaris/internal/config"
	"github.com/astralhq/polaris/internal/history"
	"github.com/astralhq/polaris/internal/task"
	"github.com/astralhq/polaris/internal/taskfile"
	"github.com/astralhq/polaris/internal/telemetry"
)

// loadTasks reads and normalizes a task file (JSON or TOML by extension).
func loadTasks(path string) ([]task.Task, error) {
	recs, err := taskfile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return task.NormalizeAll(recs), nil
}

// openEmitter opens the configured telemetry sink. A blank path means
// telemetry is off; the nil emitter is a no-op.
func openEmitter(cfg config.Config) (*telemetry.Emitter, error) {
	if cfg.TelemetryPath == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(cfg.TelemetryPath)
}

// openHistory opens the configured run log, creating its directory. A nil
// store is a no-op recorder when history is disabled.
func openHistory(ctx context.Context, cfg config.Config) (*history.Store, error) {
	if !cfg.HistoryEnabled {
		return nil, nil
	}
	if dir := filepath.Dir(cfg.HistoryPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}
	return history.Open(ctx, cfg.HistoryPath)
}
