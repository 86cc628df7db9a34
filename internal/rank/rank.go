// Package rank runs the full analysis pipeline over a task set: graph
// construction, cycle detection, scoring, and ranking. It is the single
// entry point used by the HTTP handlers, CLI commands, MCP tools, and TUI.
package rank

import (
	"sort"
	"time"

	"github.com/astralhq/polaris/internal/graph"
	"github.com/astralhq/polaris/internal/score"
	"github.com/astralhq/polaris/internal/task"
)

// TopN is how many suggestions a Suggest call returns at most.
const TopN = 3

// Analysis is the result of scoring every task in a request.
type Analysis struct {
	// Results holds one scored task per input task, in input order.
	Results []score.ScoredTask `json:"results"`
	// Cycles lists every detected dependency cycle, one canonical
	// rotation each.
	Cycles [][]string `json:"cycles"`
}

// Suggestion is the ranked top slice of an analysis.
type Suggestion struct {
	Top3   []score.ScoredTask `json:"top3"`
	Cycles [][]string         `json:"cycles"`
}

// Analyze scores every task against the given clock using the default
// factor weights. Results keep input order; callers bucket by score band
// for display. The only error is a duplicate task id in the input.
func Analyze(tasks []task.Task, now time.Time) (*Analysis, error) {
	return AnalyzeWeighted(tasks, now, score.DefaultWeights())
}

// AnalyzeWeighted is Analyze with operator-configured factor weights.
func AnalyzeWeighted(tasks []task.Task, now time.Time, w score.Weights) (*Analysis, error) {
	g, err := graph.Build(tasks)
	if err != nil {
		return nil, err
	}

	cycles := g.Cycles()
	members := graph.InCycle(cycles)
	engine := &score.Engine{Weights: w, Now: now}

	results := make([]score.ScoredTask, len(tasks))
	for i, t := range tasks {
		results[i] = engine.Score(t, g, members)
	}

	return &Analysis{Results: results, Cycles: cycles}, nil
}

// Suggest ranks the analysis and returns the top entries plus the full
// cycle list, so callers can unblock cyclic chains even when none of them
// ranked highly. Inputs with fewer than TopN tasks return fewer entries;
// an empty input returns empty slices.
func Suggest(tasks []task.Task, now time.Time) (*Suggestion, error) {
	return SuggestWeighted(tasks, now, score.DefaultWeights())
}

// SuggestWeighted is Suggest with operator-configured factor weights.
func SuggestWeighted(tasks []task.Task, now time.Time, w score.Weights) (*Suggestion, error) {
	analysis, err := AnalyzeWeighted(tasks, now, w)
	if err != nil {
		return nil, err
	}

	top := Ranked(analysis)
	if len(top) > TopN {
		top = top[:TopN]
	}
	return &Suggestion{
		Top3:   append([]score.ScoredTask{}, top...),
		Cycles: analysis.Cycles,
	}, nil
}

// Ranked returns the analysis results in suggestion order without
// truncating to TopN. The TUI browses the full ranked list.
func Ranked(analysis *Analysis) []score.ScoredTask {
	ranked := append([]score.ScoredTask{}, analysis.Results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankLess(ranked[i], ranked[j])
	})
	return ranked
}

// rankLess orders tasks for suggestion: higher score first, then higher raw
// importance, then earlier due date (no deadline sorts last), then original
// input position. The chain makes the ranking a deterministic total order.
func rankLess(a, b score.ScoredTask) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Importance != b.Importance {
		return a.Importance > b.Importance
	}
	switch {
	case a.Due != nil && b.Due == nil:
		return true
	case a.Due == nil && b.Due != nil:
		return false
	case a.Due != nil && b.Due != nil && !a.Due.Equal(*b.Due):
		return a.Due.Before(*b.Due)
	}
	return a.Index < b.Index
}
