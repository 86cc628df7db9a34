package graph

import (
	"sort"
	"strings"
)

// DFS colors for cycle detection.
const (
	unvisited = iota
	visiting
	visited
)

// Cycles finds every distinct dependency cycle in the graph. Each cycle is
// an ordered id sequence, canonicalized to start at its lexicographically
// smallest member so the same loop is reported once regardless of which
// node the traversal entered it from. Self-loops are length-1 cycles.
// The result is sorted by canonical key and is empty (never nil) for an
// acyclic graph. Cost is linear in nodes plus edges.
func (g *Graph) Cycles() [][]string {
	state := make(map[string]int, len(g.ids))
	var stack []string
	seen := make(map[string]bool)
	cycles := [][]string{}

	var dfs func(id string)
	dfs = func(id string) {
		state[id] = visiting
		stack = append(stack, id)

		for _, dep := range g.adjacency[id] {
			switch state[dep] {
			case unvisited:
				dfs(dep)
			case visiting:
				// Back-edge: the cycle is the stack segment from dep onward.
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == dep {
						cycle := canonicalize(stack[i:])
						key := strings.Join(cycle, "\x00")
						if !seen[key] {
							seen[key] = true
							cycles = append(cycles, cycle)
						}
						break
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = visited
	}

	for _, id := range g.ids {
		if state[id] == unvisited {
			dfs(id)
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return strings.Join(cycles[i], "\x00") < strings.Join(cycles[j], "\x00")
	})
	return cycles
}

// InCycle returns the set of ids that belong to at least one of the given cycles.
func InCycle(cycles [][]string) map[string]bool {
	members := make(map[string]bool)
	for _, cycle := range cycles {
		for _, id := range cycle {
			members[id] = true
		}
	}
	return members
}

// canonicalize rotates a cycle so it starts at its lexicographically
// smallest member, preserving traversal order. A copy is returned; the
// input slice (a live DFS stack segment) is not retained.
func canonicalize(cycle []string) []string {
	smallest := 0
	for i, id := range cycle {
		if id < cycle[smallest] {
			smallest = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[smallest:]...)
	out = append(out, cycle[:smallest]...)
	return out
}
