package engine

import (
	"github.com/smilemakc/archsim/internal/domain"
	"github.com/smilemakc/archsim/internal/types"
)

const (
	warnNoServer         = "No server layer detected; add an application server tier."
	warnDatabaseExposed  = "Database is directly exposed to users; add a server layer."
	warnSingleServer     = "Single server instance detected; potential single point of failure."
	warnNoScalingBuffer  = "No scaling buffer detected (cache/queue/rate limiter)."
)

// ReviewArchitecture runs stateless pattern checks over ordered nodes,
// emitting each warning at most once, in this fixed order.
func ReviewArchitecture(g domain.Graph, ordered []string) []string {
	nodeByID := make(map[string]domain.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		nodeByID[n.ID] = n
	}

	normalized := make([]types.CanonicalType, len(ordered))
	for i, id := range ordered {
		normalized[i] = types.Normalize(nodeByID[id].Type)
	}

	var warnings []string

	hasServer := false
	serverCount := 0
	hasBuffer := false
	var firstNonUser types.CanonicalType
	for _, t := range normalized {
		if t == types.Server {
			hasServer = true
			serverCount++
		}
		if t == types.Cache || t == types.Queue || t == types.RateLimiter {
			hasBuffer = true
		}
		if firstNonUser == "" && t != types.User {
			firstNonUser = t
		}
	}

	if !hasServer {
		warnings = append(warnings, warnNoServer)
	}
	if firstNonUser == types.Database {
		warnings = append(warnings, warnDatabaseExposed)
	}
	if serverCount == 1 {
		warnings = append(warnings, warnSingleServer)
	}
	if !hasBuffer {
		warnings = append(warnings, warnNoScalingBuffer)
	}

	if warnings == nil {
		return []string{}
	}
	return warnings
}
