// Package score computes the normalized [0,1] priority score and its
// human-readable explanation for each task. Scoring is a pure function of
// the task, the request's dependency graph, and an explicitly injected
// clock: the same inputs always produce the same score and explanation.
package score

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/astralhq/polaris/internal/graph"
	"github.com/astralhq/polaris/internal/task"
)

// Weights control how the urgency, importance, effort, and dependency
// factors combine into the final score. They should sum to 1 so an
// unpenalized score stays within [0, 1].
type Weights struct {
	Urgency    float64 `mapstructure:"urgency"`
	Importance float64 `mapstructure:"importance"`
	Effort     float64 `mapstructure:"effort"`
	Dependency float64 `mapstructure:"dependency"`
}

// DefaultWeights are the production factor weights.
func DefaultWeights() Weights {
	return Weights{
		Urgency:    0.35,
		Importance: 0.30,
		Effort:     0.20,
		Dependency: 0.15,
	}
}

// LeadDays is the urgency lead time: anything due within this many days
// scores full urgency.
const LeadDays = 2

// Blocking adjustments. A task waiting on other work takes a bounded
// deduction; a task inside a cycle is additionally capped below the high
// band, because no amount of urgency makes an uncompletable task actionable.
const (
	BlockedPenalty = 0.10
	CyclePenalty   = 0.25
	CycleCeiling   = 0.5
)

// Display bands used by the CLI and TUI renderers to color scores.
// These are presentation thresholds, not an engine contract.
const (
	BandHigh   = 0.6
	BandMedium = 0.35
)

// quickWinThreshold marks the effort component above which a task is
// called out as a quick win in its explanation.
const quickWinThreshold = 0.7

// dependentsSaturation is the dependents count at which the dependency
// factor reaches its maximum credit.
const dependentsSaturation = 5

// Metadata echoes the raw task attributes alongside a score for display.
type Metadata struct {
	DueDate        *string  `json:"due_date"`
	EstimatedHours float64  `json:"estimated_hours"`
	Importance     int      `json:"importance"`
	Dependencies   []string `json:"dependencies"`
}

// ScoredTask is a task plus its derived score and explanation.
type ScoredTask struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Score       float64  `json:"score"`
	Explanation string   `json:"explanation"`
	Metadata    Metadata `json:"metadata"`

	// Retained for ranking tie-breaks; not part of the wire shape.
	Importance int        `json:"-"`
	Due        *time.Time `json:"-"`
	Index      int        `json:"-"`
}

// Engine scores tasks against a fixed clock. Take the clock once per
// request so every task in a call sees the same "now".
type Engine struct {
	Weights Weights
	Now     time.Time
}

// New returns an Engine with the default weights.
func New(now time.Time) *Engine {
	return &Engine{Weights: DefaultWeights(), Now: now}
}

// Score computes the priority score and explanation for one task.
// inCycle is the membership set from the request's detected cycles.
func (e *Engine) Score(t task.Task, g *graph.Graph, inCycle map[string]bool) ScoredTask {
	days, hasDue := e.daysUntilDue(t)
	urgency := urgencyOf(days, hasDue)
	importance := importanceOf(t.Importance)
	effort := effortOf(t.EstimatedHours)
	dependency := dependencyOf(g.Dependents[t.ID])

	raw := e.Weights.Urgency*urgency +
		e.Weights.Importance*importance +
		e.Weights.Effort*effort +
		e.Weights.Dependency*dependency

	blocked := g.Blocked(t.ID)
	cyclic := inCycle[t.ID]
	if blocked {
		raw -= BlockedPenalty
	}
	if cyclic {
		raw -= CyclePenalty
		raw = math.Min(raw, CycleCeiling)
	}

	st := ScoredTask{
		ID:          t.ID,
		Title:       t.Title,
		Score:       round4(clamp01(raw)),
		Explanation: e.explain(t, g, days, hasDue, effort, blocked, cyclic),
		Metadata: Metadata{
			EstimatedHours: t.EstimatedHours,
			Importance:     t.Importance,
			Dependencies:   append([]string{}, t.Dependencies...),
		},
		Importance: t.Importance,
		Due:        t.Due,
		Index:      t.Index,
	}
	if t.Due != nil {
		iso := t.Due.Format(task.DueDateLayout)
		st.Metadata.DueDate = &iso
	}
	return st
}

// daysUntilDue returns whole calendar days between the engine's clock and
// the due date. Negative values mean overdue.
func (e *Engine) daysUntilDue(t task.Task) (int, bool) {
	if t.Due == nil {
		return 0, false
	}
	today := time.Date(e.Now.Year(), e.Now.Month(), e.Now.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Due.Sub(today).Hours() / 24), true
}

// urgencyOf maps days-until-due onto [0, 1]. The curve is absolute rather
// than normalized across the batch so scoring stays a pure per-task
// function: overdue and near-due work saturates at 1, then urgency decays
// piecewise toward a small floor. Monotone non-increasing in days.
func urgencyOf(days int, hasDue bool) float64 {
	switch {
	case !hasDue:
		return 0
	case days <= LeadDays:
		return 1
	case days <= 7:
		return 0.6 + 0.4*float64(7-days)/float64(7-LeadDays)
	case days <= 30:
		return 0.2 + 0.4*float64(30-days)/22
	default:
		return 0.05
	}
}

// importanceOf rescales the 1-10 importance rating onto [0, 1], clamping
// out-of-range raw values into the band.
func importanceOf(importance int) float64 {
	return clamp01(float64(importance-task.ImportanceMin) / float64(task.ImportanceMax-task.ImportanceMin))
}

// effortOf maps estimated hours onto (0, 1]: shorter tasks score higher,
// with diminishing sensitivity for very large estimates.
func effortOf(hours float64) float64 {
	return 1 / (1 + hours/4)
}

// dependencyOf credits a task for the number of other tasks it unblocks,
// saturating so a hub task cannot dominate the score on fan-out alone.
func dependencyOf(dependents int) float64 {
	return math.Min(1, float64(dependents)/dependentsSaturation)
}

// explain builds the audit trail for a score: every contributing factor is
// named so a reader can see why the number came out as it did without
// recomputing anything.
func (e *Engine) explain(t task.Task, g *graph.Graph, days int, hasDue bool, effort float64, blocked, cyclic bool) string {
	var reasons []string

	switch {
	case !hasDue:
		reasons = append(reasons, "No due date (lower urgency)")
	case days < 0:
		reasons = append(reasons, fmt.Sprintf("Past due (%d days overdue)", -days))
	case days == 0:
		reasons = append(reasons, "Due today")
	default:
		reasons = append(reasons, fmt.Sprintf("Due in %d days", days))
	}

	reasons = append(reasons,
		fmt.Sprintf("Importance: %d/10", t.Importance),
		fmt.Sprintf("Estimated hours: %s", strconv.FormatFloat(t.EstimatedHours, 'f', -1, 64)))

	if n := g.Dependents[t.ID]; n > 0 {
		reasons = append(reasons, fmt.Sprintf("Unblocks %d other task%s", n, plural(n)))
	}
	if effort > quickWinThreshold {
		reasons = append(reasons, "Quick win (low effort)")
	}

	if dangling := g.Dangling[t.ID]; len(dangling) > 0 {
		sorted := append([]string{}, dangling...)
		sort.Strings(sorted)
		for _, dep := range sorted {
			reasons = append(reasons, fmt.Sprintf("Waiting on unresolved dependency %q", dep))
		}
	}
	if blocked && len(g.Deps(t.ID)) > 0 {
		reasons = append(reasons, "Blocked by incomplete dependencies")
	}
	if cyclic {
		reasons = append(reasons, "Part of a dependency cycle (capped)")
	}

	return strings.Join(reasons, "; ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round4 trims float noise so identical inputs serialize identically.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
