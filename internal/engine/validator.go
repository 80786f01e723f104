// Package engine holds the graph validator, topological orderer, flow
// simulator, architecture reviewer, and recommendation engine — the three
// tightly-coupled subsystems the rest of this repository treats as a single
// collaborator.
package engine

import (
	"sort"

	"github.com/smilemakc/archsim/internal/domain"
	"github.com/smilemakc/archsim/internal/types"
)

const (
	errAtLeastOneNode       = "Graph must contain at least one node."
	errNonEmptyID           = "Each node must include a non-empty id."
	errValidEdgeIDs         = "Edges must reference valid node ids."
	errSelfLoop             = "Self-referential edges are not allowed."
	errAtLeastOneUser       = "Graph must contain at least one User node."
	errMustBeDAG            = "Graph must be a DAG."
	errReachableFromUser    = "All nodes must be reachable from a User node."
	errTerminalStorage      = "Graph must contain at least one terminal storage node."
	errUserDirectStorage    = "User cannot directly access storage or cache layers."
	errCacheToCompute       = "Cache cannot send traffic to compute layers."
	errDatabaseToCompute    = "Database cannot send traffic to compute layers."
	errStorageMustBeTerm    = "Storage nodes must be terminal unless sending to async processing."
	errIllegalLayerOrdering = "Illegal layer ordering detected."
	errDisconnected         = "Graph must not contain disconnected nodes."
)

// adjacency is the shared id-keyed graph shape the validator, orderer and
// simulator all build independently (two graph passes are fine: each walks
// V+E once and they have different termination policies).
type adjacency struct {
	nodeByID  map[string]domain.Node
	out       map[string][]string
	indegree  map[string]int
	outdegree map[string]int
}

func buildAdjacency(g domain.Graph) adjacency {
	a := adjacency{
		nodeByID:  make(map[string]domain.Node, len(g.Nodes)),
		out:       make(map[string][]string),
		indegree:  make(map[string]int, len(g.Nodes)),
		outdegree: make(map[string]int, len(g.Nodes)),
	}
	for _, n := range g.Nodes {
		if n.ID == "" {
			continue
		}
		a.nodeByID[n.ID] = n
	}
	for id := range a.nodeByID {
		a.indegree[id] = 0
		a.outdegree[id] = 0
	}
	for _, e := range g.Edges {
		if _, ok := a.nodeByID[e.Source]; !ok {
			continue
		}
		if _, ok := a.nodeByID[e.Target]; !ok {
			continue
		}
		if e.Source == e.Target {
			continue
		}
		a.out[e.Source] = append(a.out[e.Source], e.Target)
		a.indegree[e.Target]++
		a.outdegree[e.Source]++
	}
	return a
}

// Validate runs structural and semantic checks over g and returns a
// ValidationResult whose Errors are sorted and deduplicated.
func Validate(g domain.Graph) domain.ValidationResult {
	if len(g.Nodes) == 0 {
		return domain.ValidationResult{Valid: false, Errors: []string{errAtLeastOneNode}}
	}

	var errs []string

	nodeByID := make(map[string]domain.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID != "" {
			nodeByID[n.ID] = n
		}
	}
	if len(nodeByID) != len(g.Nodes) {
		errs = append(errs, errNonEmptyID)
	}

	out := make(map[string][]string)
	indegree := make(map[string]int, len(nodeByID))
	outdegree := make(map[string]int, len(nodeByID))
	for id := range nodeByID {
		indegree[id] = 0
		outdegree[id] = 0
	}
	for _, e := range g.Edges {
		_, sourceOK := nodeByID[e.Source]
		_, targetOK := nodeByID[e.Target]
		if !sourceOK || !targetOK {
			errs = append(errs, errValidEdgeIDs)
			continue
		}
		if e.Source == e.Target {
			errs = append(errs, errSelfLoop)
			continue
		}
		out[e.Source] = append(out[e.Source], e.Target)
		indegree[e.Target]++
		outdegree[e.Source]++
	}

	var userNodes []string
	for id, n := range nodeByID {
		if types.Normalize(n.Type) == types.User {
			userNodes = append(userNodes, id)
		}
	}
	if len(userNodes) == 0 {
		errs = append(errs, errAtLeastOneUser)
	}

	if hasCycle(nodeByID, out) {
		errs = append(errs, errMustBeDAG)
	}

	if len(userNodes) > 0 {
		reachable := bfsReachable(userNodes, out)
		for id := range nodeByID {
			if !reachable[id] {
				errs = append(errs, errReachableFromUser)
				break
			}
		}
	}

	// A terminal storage node must exist; this is also the outcome when
	// there are no Storage-layer nodes at all, matching any() over an
	// empty set being false.
	storageHasTerminal := false
	for id, n := range nodeByID {
		if types.LayerOf(types.Normalize(n.Type)) == types.LayerStorage && outdegree[id] == 0 {
			storageHasTerminal = true
			break
		}
	}
	if !storageHasTerminal {
		errs = append(errs, errTerminalStorage)
	}

	for source, targets := range out {
		sourceType := types.Normalize(nodeByID[source].Type)
		sourceLayer := types.LayerOf(sourceType)
		for _, target := range targets {
			targetType := types.Normalize(nodeByID[target].Type)
			targetLayer := types.LayerOf(targetType)

			if sourceType == types.User && (targetType == types.Database || targetType == types.Cache) {
				errs = append(errs, errUserDirectStorage)
			}
			if sourceType == types.Cache && targetLayer == types.LayerCompute {
				errs = append(errs, errCacheToCompute)
			}
			if sourceType == types.Database && targetLayer == types.LayerCompute {
				errs = append(errs, errDatabaseToCompute)
			}
			if sourceLayer == types.LayerStorage && targetLayer != types.LayerAsync {
				errs = append(errs, errStorageMustBeTerm)
			}
			if !types.AllowedTargets(sourceLayer, targetLayer) {
				errs = append(errs, errIllegalLayerOrdering)
			}
		}
	}

	errs = sortUnique(errs)
	return domain.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func sortUnique(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	sort.Strings(in)
	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

func hasCycle(nodeByID map[string]domain.Node, out map[string][]string) bool {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)
	var visit func(id string) bool
	visit = func(id string) bool {
		visiting[id] = true
		for _, next := range out[id] {
			if visiting[next] {
				return true
			}
			if !visited[next] && visit(next) {
				return true
			}
		}
		delete(visiting, id)
		visited[id] = true
		return false
	}
	for id := range nodeByID {
		if !visited[id] && visit(id) {
			return true
		}
	}
	return false
}

func bfsReachable(roots []string, out map[string][]string) map[string]bool {
	reachable := make(map[string]bool, len(roots))
	queue := append([]string{}, roots...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if reachable[id] {
			continue
		}
		reachable[id] = true
		for _, next := range out[id] {
			if !reachable[next] {
				queue = append(queue, next)
			}
		}
	}
	return reachable
}
