package engine

import "github.com/smilemakc/archsim/internal/domain"

// TopologicalOrder produces a Kahn linearization of g, independent of the
// validator. If the number of nodes that come out differs from the number of
// distinct node ids (a cycle leaves nodes out), the order is empty and the
// disconnected-nodes error is returned.
func TopologicalOrder(g domain.Graph) ([]string, []string) {
	a := buildAdjacency(g)

	indegree := make(map[string]int, len(a.indegree))
	for id, d := range a.indegree {
		indegree[id] = d
	}

	var queue []string
	for _, n := range g.Nodes {
		if n.ID == "" {
			continue
		}
		if _, ok := a.nodeByID[n.ID]; !ok {
			continue
		}
		if indegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	var ordered []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		ordered = append(ordered, id)
		for _, next := range a.out[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(ordered) != len(a.nodeByID) {
		return nil, []string{errDisconnected}
	}
	return ordered, nil
}
