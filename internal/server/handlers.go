package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/astralhq/polaris/internal/graph"
	"github.com/astralhq/polaris/internal/history"
	"github.com/astralhq/polaris/internal/rank"
	"github.com/astralhq/polaris/internal/task"
	"github.com/astralhq/polaris/internal/taskfile"
	"github.com/astralhq/polaris/internal/telemetry"
)

// maxBodyBytes caps request bodies; the engine imposes no task-count limit,
// so the transport keeps payloads within reason.
const maxBodyBytes = 4 << 20

// errorBody is the JSON error envelope for all non-2xx responses.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// handleAnalyze scores every submitted task. Body: JSON array of task
// records. Response: {results, cycles} with results in input order.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required", "")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body", err.Error())
		return
	}

	tasks, ok := s.decodeTasks(w, r, "analyze", body)
	if !ok {
		return
	}

	started := time.Now()
	now := s.opts.Clock().UTC()
	analysis, err := rank.AnalyzeWeighted(tasks, now, s.opts.Weights)
	if err != nil {
		s.rejectValidation(w, r, "analyze", err)
		return
	}

	s.recordRun(r, telemetry.KindAnalyze, "analyze", history.Run{
		At:         now,
		Op:         "analyze",
		TaskCount:  len(tasks),
		CycleCount: len(analysis.Cycles),
		TopID:      topOf(analysis),
		TopScore:   topScoreOf(analysis),
	}, started)

	writeJSON(w, http.StatusOK, analysis)
}

// handleSuggest ranks the task list passed URL-encoded as a JSON array in
// the "tasks" query parameter and returns {top3, cycles}.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required", "")
		return
	}

	q := r.URL.Query().Get("tasks")
	if q == "" {
		writeError(w, http.StatusBadRequest, "no tasks provided in query parameter 'tasks'", "")
		return
	}

	tasks, ok := s.decodeTasks(w, r, "suggest", []byte(q))
	if !ok {
		return
	}

	started := time.Now()
	now := s.opts.Clock().UTC()
	suggestion, err := rank.SuggestWeighted(tasks, now, s.opts.Weights)
	if err != nil {
		s.rejectValidation(w, r, "suggest", err)
		return
	}

	run := history.Run{
		At:         now,
		Op:         "suggest",
		TaskCount:  len(tasks),
		CycleCount: len(suggestion.Cycles),
	}
	if len(suggestion.Top3) > 0 {
		run.TopID = suggestion.Top3[0].ID
		run.TopScore = suggestion.Top3[0].Score
	}
	s.recordRun(r, telemetry.KindSuggest, "suggest", run, started)

	writeJSON(w, http.StatusOK, suggestion)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeTasks parses and normalizes a task payload, writing the 4xx
// response itself when the payload is unusable.
func (s *Server) decodeTasks(w http.ResponseWriter, r *http.Request, op string, payload []byte) ([]task.Task, bool) {
	recs, err := taskfile.ParseJSON(payload)
	if err != nil {
		switch {
		case errors.Is(err, taskfile.ErrNotArray):
			s.emitValidation(r, op, err)
			writeError(w, http.StatusBadRequest, taskfile.ErrNotArray.Error(), "")
		default:
			s.emitValidation(r, op, err)
			writeError(w, http.StatusBadRequest, "invalid JSON", err.Error())
		}
		return nil, false
	}
	return task.NormalizeAll(recs), true
}

// rejectValidation maps engine validation failures onto 400 responses.
// Anything unexpected escapes to the recovery middleware as a 500.
func (s *Server) rejectValidation(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, graph.ErrDuplicateID) {
		s.emitValidation(r, op, err)
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	panic(fmt.Sprintf("%s: %v", op, err))
}

func (s *Server) emitValidation(r *http.Request, op string, err error) {
	_ = s.opts.Emitter.Emit(telemetry.Event{
		Kind:   telemetry.KindValidationFailed,
		Op:     op,
		Remote: r.RemoteAddr,
		Detail: err.Error(),
	})
}

// recordRun emits the per-request telemetry event and appends to the run
// history. Both sinks are nil-safe; history failures are logged through
// telemetry rather than failing the request.
func (s *Server) recordRun(r *http.Request, kind, op string, run history.Run, started time.Time) {
	_ = s.opts.Emitter.Emit(telemetry.Event{
		Kind:       kind,
		Op:         op,
		TaskCount:  run.TaskCount,
		CycleCount: run.CycleCount,
		DurationMS: time.Since(started).Milliseconds(),
		Remote:     r.RemoteAddr,
	})
	if err := s.opts.History.Record(r.Context(), run); err != nil {
		_ = s.opts.Emitter.Emit(telemetry.Event{
			Kind:   telemetry.KindHistoryFailed,
			Op:     op,
			Detail: err.Error(),
		})
		return
	}
	if s.opts.History != nil {
		_ = s.opts.Emitter.Emit(telemetry.Event{Kind: telemetry.KindHistoryRecorded, Op: op})
	}
}

func topOf(a *rank.Analysis) string {
	best := ""
	bestScore := -1.0
	for _, st := range a.Results {
		if st.Score > bestScore {
			best, bestScore = st.ID, st.Score
		}
	}
	return best
}

func topScoreOf(a *rank.Analysis) float64 {
	best := 0.0
	for _, st := range a.Results {
		if st.Score > best {
			best = st.Score
		}
	}
	return best
}

// writeJSON marshals the full payload before touching the wire so an
// encoding failure can still produce a clean 500 instead of a truncated
// 200 body.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	data, _ := json.Marshal(errorBody{Error: msg, Details: details})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
