package graph

import "math"

// PageRank parameters. Importance flows from dependents to their
// dependencies, so a task that many high-impact tasks wait on ranks high.
const (
	prDamping       = 0.85
	prEpsilon       = 1e-6
	prMaxIterations = 100
)

// impactAlpha weights PageRank against betweenness in the composite score.
const impactAlpha = 0.6

// Impact computes a composite structural impact score per task:
//
//	impact = alpha * normalizedPageRank + (1-alpha) * betweenness
//
// PageRank measures how much of the set transitively waits on a task;
// betweenness (Brandes) measures how often it sits on dependency chains
// between other tasks. Both are in [0, 1]. The result is presentation
// material for execution-plan reports and does not feed priority scoring.
func (g *Graph) Impact() map[string]float64 {
	pr := g.pageRank()

	maxPR := 0.0
	for _, v := range pr {
		if v > maxPR {
			maxPR = v
		}
	}
	if maxPR > 0 {
		for id := range pr {
			pr[id] /= maxPR
		}
	}

	bc := g.betweenness()

	impact := make(map[string]float64, len(g.ids))
	for _, id := range g.ids {
		impact[id] = impactAlpha*pr[id] + (1-impactAlpha)*bc[id]
	}
	return impact
}

// pageRank runs iterative PageRank over the resolvable edges. Tasks with no
// dependencies redistribute their rank uniformly, following the standard
// dangling-node treatment. Scores sum to approximately 1.
func (g *Graph) pageRank() map[string]float64 {
	n := len(g.ids)
	if n == 0 {
		return map[string]float64{}
	}

	reverse := g.reverseEdges()
	nf := float64(n)
	base := (1 - prDamping) / nf

	rank := make(map[string]float64, n)
	for _, id := range g.ids {
		rank[id] = 1 / nf
	}

	for iter := 0; iter < prMaxIterations; iter++ {
		var danglingSum float64
		for _, id := range g.ids {
			if len(g.adjacency[id]) == 0 {
				danglingSum += rank[id]
			}
		}
		danglingShare := prDamping * danglingSum / nf

		next := make(map[string]float64, n)
		for _, v := range g.ids {
			var sum float64
			for _, u := range reverse[v] {
				if out := len(g.adjacency[u]); out > 0 {
					sum += rank[u] / float64(out)
				}
			}
			next[v] = base + prDamping*sum + danglingShare
		}

		maxDelta := 0.0
		for _, id := range g.ids {
			if d := math.Abs(next[id] - rank[id]); d > maxDelta {
				maxDelta = d
			}
		}
		rank = next
		if maxDelta < prEpsilon {
			break
		}
	}
	return rank
}

// betweenness computes normalized betweenness centrality with Brandes'
// algorithm over execution-order edges (dependency → dependent).
func (g *Graph) betweenness() map[string]float64 {
	cb := make(map[string]float64, len(g.ids))
	for _, id := range g.ids {
		cb[id] = 0
	}

	n := len(g.ids)
	if n < 3 {
		return cb
	}

	reverse := g.reverseEdges()
	for _, s := range g.ids {
		stack, sigma, pred := brandesBFS(g.ids, reverse, s)

		delta := make(map[string]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	norm := float64((n - 1) * (n - 2))
	for id := range cb {
		cb[id] /= norm
	}
	return cb
}

// brandesBFS runs the forward phase of Brandes' algorithm from source s over
// the given execution-order edges, returning the visit stack, shortest-path
// counts, and predecessor lists.
func brandesBFS(ids []string, edges map[string][]string, s string) ([]string, map[string]float64, map[string][]string) {
	n := len(ids)
	stack := make([]string, 0, n)
	pred := make(map[string][]string, n)
	sigma := make(map[string]float64, n)
	dist := make(map[string]int, n)

	for _, id := range ids {
		dist[id] = -1
	}
	sigma[s] = 1
	dist[s] = 0

	queue := []string{s}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		stack = append(stack, v)

		for _, w := range edges[v] {
			if dist[w] < 0 {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
			if dist[w] == dist[v]+1 {
				sigma[w] += sigma[v]
				pred[w] = append(pred[w], v)
			}
		}
	}
	return stack, sigma, pred
}

// reverseEdges maps each id to the ids that depend on it, in input order.
func (g *Graph) reverseEdges() map[string][]string {
	reverse := make(map[string][]string, len(g.ids))
	for _, id := range g.ids {
		for _, dep := range g.adjacency[id] {
			reverse[dep] = append(reverse[dep], id)
		}
	}
	return reverse
}
