package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smilemakc/archsim/internal/domain"
	"github.com/smilemakc/archsim/internal/engine"
)

func TestGenerateRecommendationsHealthy(t *testing.T) {
	perf := domain.PerformanceSummary{IncomingRPS: 10, Throughput: 10}
	recs := engine.GenerateRecommendations(perf, nil, nil)
	assert.Equal(t, []string{"Architecture looks healthy for the current load profile."}, recs)
}

func TestGenerateRecommendationsDedupPreservesOrder(t *testing.T) {
	perf := domain.PerformanceSummary{IncomingRPS: 100, Throughput: 80, ErrorRate: 0.2, TotalLatency: 600}
	metrics := []domain.NodeMetric{
		{ComponentType: "Server", Status: domain.StatusOverloaded},
		{ComponentType: "Server", Status: domain.StatusOverloaded},
	}
	warnings := []string{
		"No server layer detected; add an application server tier.",
		"Single server instance detected; potential single point of failure.",
	}
	recs := engine.GenerateRecommendations(perf, metrics, warnings)

	assert.Equal(t, []string{
		"Increase capacity on the bottleneck or add replicas to match incoming RPS.",
		"Reduce error rate by scaling the overloaded components or throttling load.",
		"Optimize latency hotspots by tuning base latency or caching.",
		"Scale Server capacity or add replicas to reduce utilization.",
		"Introduce an application server tier to protect data stores.",
	}, recs)

	seen := make(map[string]bool)
	for _, r := range recs {
		assert.False(t, seen[r])
		seen[r] = true
	}
}
