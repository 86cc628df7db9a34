package graph

import "fmt"

// TopologicalOrder returns the task ids in a valid execution order:
// every dependency appears before its dependents. Ties are broken by input
// position so the ordering is deterministic. Returns ErrCycle when the
// graph contains a cycle, since no complete ordering exists.
func (g *Graph) TopologicalOrder() ([]string, error) {
	pos := make(map[string]int, len(g.ids))
	for i, id := range g.ids {
		pos[id] = i
	}

	// Out-degree over resolvable edges; dangling references do not gate
	// execution because the referenced work is not in this set.
	degree := make(map[string]int, len(g.ids))
	dependents := make(map[string][]string, len(g.ids))
	for _, id := range g.ids {
		degree[id] = len(g.adjacency[id])
		for _, dep := range g.adjacency[id] {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	queue := make([]string, 0, len(g.ids))
	for _, id := range g.ids {
		if degree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(g.ids))
	for len(queue) > 0 {
		// Pick the frontier node with the smallest input position.
		best := 0
		for i := 1; i < len(queue); i++ {
			if pos[queue[i]] < pos[queue[best]] {
				best = i
			}
		}
		id := queue[best]
		queue = append(queue[:best], queue[best+1:]...)
		order = append(order, id)

		for _, dependent := range dependents[id] {
			degree[dependent]--
			if degree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(order) != len(g.ids) {
		return nil, fmt.Errorf("%w: %d of %d tasks could be ordered",
			ErrCycle, len(order), len(g.ids))
	}
	return order, nil
}
