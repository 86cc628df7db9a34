package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/astralhq/polaris/internal/rank"
	"github.com/astralhq/polaris/internal/score"
	"github.com/astralhq/polaris/internal/task"
	"github.com/astralhq/polaris/internal/telemetry"
)

// taskInput is the wire form of one task in a tool call. Every field is
// optional; normalization fills defaults the same way the REST API does.
type taskInput struct {
	ID             string   `json:"id,omitempty" jsonschema:"Unique task identifier"`
	Title          string   `json:"title,omitempty" jsonschema:"Short task title"`
	DueDate        string   `json:"due_date,omitempty" jsonschema:"Due date in YYYY-MM-DD form"`
	EstimatedHours float64  `json:"estimated_hours,omitempty" jsonschema:"Estimated effort in hours"`
	Importance     int      `json:"importance,omitempty" jsonschema:"Importance rating from 1 to 10"`
	Dependencies   []string `json:"dependencies,omitempty" jsonschema:"IDs of tasks this one depends on"`
}

// analyzeInput is the input schema for the analyze_tasks tool.
type analyzeInput struct {
	Tasks []taskInput `json:"tasks" jsonschema:"Tasks to score"`
}

// analyzeOutput is the output schema for the analyze_tasks tool.
type analyzeOutput struct {
	Results []score.ScoredTask `json:"results"`
	Cycles  [][]string         `json:"cycles"`
}

// suggestInput is the input schema for the suggest_tasks tool.
type suggestInput struct {
	Tasks []taskInput `json:"tasks" jsonschema:"Tasks to rank"`
}

// suggestOutput is the output schema for the suggest_tasks tool.
type suggestOutput struct {
	Top3   []score.ScoredTask `json:"top3"`
	Cycles [][]string         `json:"cycles"`
}

// registerTools registers the prioritization tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "analyze_tasks",
		Description: "Score every task in a set and report dependency cycles",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, analyzeOutput, error) {
		start := time.Now()
		analysis, err := rank.AnalyzeWeighted(normalize(input.Tasks), s.clock(), s.weights)
		if err != nil {
			return nil, analyzeOutput{}, fmt.Errorf("analyzing tasks: %w", err)
		}

		s.emitter.Emit(telemetry.Event{
			Kind:       telemetry.KindAnalyze,
			Op:         "mcp",
			TaskCount:  len(analysis.Results),
			CycleCount: len(analysis.Cycles),
			DurationMS: time.Since(start).Milliseconds(),
		})
		return nil, analyzeOutput{Results: analysis.Results, Cycles: analysis.Cycles}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "suggest_tasks",
		Description: "Rank a task set and return the top three tasks to do next",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input suggestInput) (*mcp.CallToolResult, suggestOutput, error) {
		start := time.Now()
		suggestion, err := rank.SuggestWeighted(normalize(input.Tasks), s.clock(), s.weights)
		if err != nil {
			return nil, suggestOutput{}, fmt.Errorf("ranking tasks: %w", err)
		}

		s.emitter.Emit(telemetry.Event{
			Kind:       telemetry.KindSuggest,
			Op:         "mcp",
			TaskCount:  len(input.Tasks),
			CycleCount: len(suggestion.Cycles),
			DurationMS: time.Since(start).Milliseconds(),
		})
		return nil, suggestOutput{Top3: suggestion.Top3, Cycles: suggestion.Cycles}, nil
	})
}

// normalize converts tool inputs into validated tasks via the shared
// normalization rules.
func normalize(inputs []taskInput) []task.Task {
	recs := make([]task.Record, len(inputs))
	for i, in := range inputs {
		recs[i] = task.Record{
			ID:             in.ID,
			Title:          in.Title,
			DueDate:        in.DueDate,
			EstimatedHours: in.EstimatedHours,
			Importance:     in.Importance,
			Dependencies:   in.Dependencies,
		}
	}
	return task.NormalizeAll(recs)
}
