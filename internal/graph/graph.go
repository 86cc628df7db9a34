// Package graph builds the per-request dependency graph over a task set and
// detects cycles, dangling references, and structural metrics used by the
// scoring engine. A Graph is constructed fresh for every analyze/suggest
// call and never outlives it.
package graph

import (
	"errors"
	"fmt"

	"github.com/astralhq/polaris/internal/task"
)

// ErrDuplicateID is returned when the input task set contains the same id twice.
var ErrDuplicateID = errors.New("duplicate task id")

// ErrCycle is returned by orderings that require an acyclic graph.
var ErrCycle = errors.New("cycle detected")

// Graph is the directed dependency graph of one request's task set.
// An edge A → B means "A depends on B". Only edges whose target exists in
// the set are traversable; references to absent ids are recorded in Dangling.
type Graph struct {
	// adjacency maps task id → resolvable dependency ids, in declaration order.
	adjacency map[string][]string
	// Dangling maps task id → dependency ids absent from the request set.
	// These are diagnostics, not failures.
	Dangling map[string][]string
	// Dependents counts, per id, how many tasks in the set depend on it.
	Dependents map[string]int

	ids []string // node ids in input order
}

// Build assembles the dependency graph for a normalized task set. Duplicate
// ids abort construction with ErrDuplicateID naming the offender; nothing
// else fails. Cost is linear in tasks plus dependency references.
func Build(tasks []task.Task) (*Graph, error) {
	g := &Graph{
		adjacency:  make(map[string][]string, len(tasks)),
		Dangling:   make(map[string][]string),
		Dependents: make(map[string]int, len(tasks)),
		ids:        make([]string, 0, len(tasks)),
	}

	for _, t := range tasks {
		if _, exists := g.adjacency[t.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		g.adjacency[t.ID] = nil
		g.Dependents[t.ID] = 0
		g.ids = append(g.ids, t.ID)
	}

	for _, t := range tasks {
		seen := make(map[string]bool, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			if _, ok := g.adjacency[dep]; ok {
				g.adjacency[t.ID] = append(g.adjacency[t.ID], dep)
				g.Dependents[dep]++
			} else {
				g.Dangling[t.ID] = append(g.Dangling[t.ID], dep)
			}
		}
	}

	return g, nil
}

// IDs returns the node ids in input order.
func (g *Graph) IDs() []string {
	return g.ids
}

// Deps returns the resolvable dependency ids of a node, in declaration order.
func (g *Graph) Deps(id string) []string {
	return g.adjacency[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.ids)
}

// Blocked reports whether a task is waiting on anything: a resolvable
// dependency that is by definition not yet complete, or a reference to a
// task absent from the request set.
func (g *Graph) Blocked(id string) bool {
	return len(g.adjacency[id]) > 0 || len(g.Dangling[id]) > 0
}
