package engine

import (
	"math"

	"github.com/smilemakc/archsim/internal/domain"
	"github.com/smilemakc/archsim/internal/types"
)

const (
	algorithmRoundRobin        = "round_robin"
	algorithmLeastCapacity     = "least_capacity"
	algorithmWeightedRoundRobin = "weighted_round_robin"
)

// Simulate propagates request rate through g in the given topological
// order, honoring load-balancer dispatch algorithms, and returns the
// aggregate performance summary plus per-node metrics. ordered must be a
// valid topological order of g (the caller runs Validate + TopologicalOrder
// first); Simulate does not re-check acyclicity.
func Simulate(g domain.Graph, ordered []string, profile *domain.TrafficProfile) (domain.PerformanceSummary, []domain.NodeMetric) {
	nodeByID := make(map[string]domain.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID != "" {
			nodeByID[n.ID] = n
		}
	}

	out := make(map[string][]string)
	in := make(map[string][]string)
	indegree := make(map[string]int, len(nodeByID))
	for id := range nodeByID {
		indegree[id] = 0
	}
	for _, e := range g.Edges {
		if _, ok := nodeByID[e.Source]; !ok {
			continue
		}
		if _, ok := nodeByID[e.Target]; !ok {
			continue
		}
		if e.Source == e.Target {
			continue
		}
		out[e.Source] = append(out[e.Source], e.Target)
		in[e.Target] = append(in[e.Target], e.Source)
		indegree[e.Target]++
	}

	if len(ordered) == 0 {
		return domain.PerformanceSummary{}, []domain.NodeMetric{}
	}

	rootRPS := resolveTraffic(nodeByID, ordered, profile)

	incomingAcc := make(map[string]float64, len(nodeByID))
	incomingAcc[ordered[0]] = rootRPS

	type nodeResult struct {
		canonical   types.CanonicalType
		incoming    float64
		effective   float64
		utilization float64 // may be +Inf
		overflow    float64
		latency     float64
		status      string
	}
	results := make(map[string]nodeResult, len(nodeByID))
	level := make(map[string]int, len(nodeByID))

	for _, id := range ordered {
		node := nodeByID[id]
		canonical := types.Normalize(node.Type)
		incoming := incomingAcc[id]

		if indegree[id] == 0 {
			level[id] = -1
		} else {
			max := -1
			for _, parent := range in[id] {
				if l := level[parent]; l > max {
					max = l
				}
			}
			level[id] = max + 1
		}

		var res nodeResult
		res.canonical = canonical
		res.incoming = incoming

		if canonical == types.User {
			res.effective = incoming
			res.utilization = 0
			res.latency = 0
			res.status = domain.StatusHealthy
		} else {
			capacity := domain.NumberConfig(node.Config, "capacity")
			baseLatency := domain.NumberConfig(node.Config, "base_latency")

			if capacity > 0 {
				res.utilization = incoming / capacity
				res.effective = math.Min(incoming, capacity)
			} else {
				if incoming > 0 {
					res.utilization = math.Inf(1)
				} else {
					res.utilization = 0
				}
				res.effective = 0
			}
			res.overflow = math.Max(0, incoming-capacity)
			if res.utilization <= 1 {
				res.latency = baseLatency
				res.status = domain.StatusHealthy
			} else {
				res.latency = baseLatency * res.utilization * res.utilization
				res.status = domain.StatusOverloaded
			}
		}
		results[id] = res

		targets := out[id]
		if res.effective > 0 && len(targets) > 0 {
			weights := dispatchWeights(node, canonical, targets, nodeByID)
			total := 0.0
			for _, w := range weights {
				total += w
			}
			if total == 0 {
				share := res.effective / float64(len(targets))
				for _, t := range targets {
					incomingAcc[t] += share
				}
			} else {
				for i, t := range targets {
					incomingAcc[t] += res.effective * weights[i] / total
				}
			}
		}
	}

	metrics := make([]domain.NodeMetric, 0, len(ordered))
	var maxLevel int
	levelLatency := make(map[int]float64)
	throughput := 0.0
	bestUtil := math.Inf(-1)
	var bestIDs []string
	bestType := ""

	for _, id := range ordered {
		r := results[id]
		metric := domain.NodeMetric{
			ComponentID:   id,
			ComponentType: string(r.canonical),
			IncomingRPS:   int(r.incoming),
			EffectiveRPS:  round3(r.effective),
			Overflow:      round3(r.overflow),
			Latency:       round3(r.latency),
			Status:        r.status,
		}
		if math.IsInf(r.utilization, 1) {
			metric.Utilization = nil
		} else {
			u := round3(r.utilization)
			metric.Utilization = &u
		}
		metrics = append(metrics, metric)

		if r.canonical != types.User {
			l := level[id]
			if l > maxLevel {
				maxLevel = l
			}
			if r.latency > levelLatency[l] {
				levelLatency[l] = r.latency
			}
			if len(out[id]) == 0 {
				throughput += r.effective
			}
			if r.utilization > bestUtil {
				bestUtil = r.utilization
				bestIDs = []string{id}
				bestType = string(r.canonical)
			} else if r.utilization == bestUtil {
				bestIDs = append(bestIDs, id)
			}
		}
	}

	totalLatency := 0.0
	for l := 0; l <= maxLevel; l++ {
		totalLatency += levelLatency[l]
	}

	errorRate := 0.0
	if rootRPS > 0 {
		errorRate = (rootRPS - throughput) / rootRPS
	}

	summary := domain.PerformanceSummary{
		IncomingRPS:             int(rootRPS),
		Throughput:              int(throughput),
		TotalLatency:            round3(totalLatency),
		ErrorRate:               round3(errorRate),
		BottleneckComponent:     bestType,
		BottleneckComponentIDs:  bestIDs,
	}
	return summary, metrics
}

func resolveTraffic(nodeByID map[string]domain.Node, ordered []string, profile *domain.TrafficProfile) float64 {
	if profile != nil {
		return profile.NumberOfUsers * profile.RequestsPerUser
	}
	for _, id := range ordered {
		n := nodeByID[id]
		if types.Normalize(n.Type) == types.User {
			return domain.NumberConfig(n.Config, "number_of_users") * domain.NumberConfig(n.Config, "requests_per_user")
		}
	}
	return 0
}

// dispatchWeights computes fan-out weights for node's outgoing targets.
// Only LoadBalancer nodes consult their algorithm config; every other node
// type dispatches with a uniform (round_robin) split.
func dispatchWeights(node domain.Node, canonical types.CanonicalType, targets []string, nodeByID map[string]domain.Node) []float64 {
	algorithm := algorithmRoundRobin
	if canonical == types.LoadBalancer {
		if a := domain.StringConfig(node.Config, "algorithm"); a != "" {
			algorithm = a
		}
	}

	weights := make([]float64, len(targets))
	switch algorithm {
	case algorithmLeastCapacity:
		for i, t := range targets {
			weights[i] = math.Max(0, domain.NumberConfig(nodeByID[t].Config, "capacity"))
		}
	case algorithmWeightedRoundRobin:
		for i, t := range targets {
			w, ok := domain.NumberConfigOK(nodeByID[t].Config, "weight")
			if !ok {
				w = 1
			}
			weights[i] = math.Max(0, w)
		}
	default:
		for i := range targets {
			weights[i] = 1
		}
	}
	return weights
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
