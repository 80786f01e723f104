package engine

import (
	"fmt"
	"strings"

	"github.com/smilemakc/archsim/internal/domain"
)

const (
	recIncreaseCapacity = "Increase capacity on the bottleneck or add replicas to match incoming RPS."
	recReduceErrorRate  = "Reduce error rate by scaling the overloaded components or throttling load."
	recOptimizeLatency  = "Optimize latency hotspots by tuning base latency or caching."
	recIntroduceServer  = "Introduce an application server tier to protect data stores."
	recAddScalingBuffer = "Add a cache, queue, or rate limiter to absorb load spikes."
	recHealthy          = "Architecture looks healthy for the current load profile."
)

// GenerateRecommendations derives an ordered, deduplicated list of
// remediation strings from the performance summary, per-node metrics, and
// architectural warnings. First-seen order is preserved across duplicates.
func GenerateRecommendations(perf domain.PerformanceSummary, metrics []domain.NodeMetric, warnings []string) []string {
	var recs []string

	if perf.IncomingRPS > 0 && perf.Throughput > 0 && perf.Throughput < perf.IncomingRPS {
		recs = append(recs, recIncreaseCapacity)
	}
	if perf.ErrorRate > 0 {
		recs = append(recs, recReduceErrorRate)
	}
	if perf.TotalLatency > 500 {
		recs = append(recs, recOptimizeLatency)
	}
	for _, m := range metrics {
		if m.Status == domain.StatusOverloaded {
			recs = append(recs, fmt.Sprintf("Scale %s capacity or add replicas to reduce utilization.", m.ComponentType))
		}
	}
	for _, w := range warnings {
		lower := strings.ToLower(w)
		if strings.Contains(lower, "server") {
			recs = append(recs, recIntroduceServer)
		}
		if strings.Contains(lower, "scaling buffer") {
			recs = append(recs, recAddScalingBuffer)
		}
	}

	if len(recs) == 0 {
		return []string{recHealthy}
	}
	return dedupOrdered(recs)
}

func dedupOrdered(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
