package engine

import "github.com/smilemakc/archsim/internal/domain"

// Evaluate runs the full validate -> order -> review -> simulate ->
// recommend pipeline over g. When the graph fails structural validation,
// the remaining fields are left at their zero values and simulation does
// not run.
func Evaluate(g domain.Graph, profile *domain.TrafficProfile) domain.EvaluationResult {
	validation := Validate(g)
	result := domain.EvaluationResult{
		Validation:      validation,
		Warnings:        []string{},
		NodeMetrics:     []domain.NodeMetric{},
		Recommendations: []string{},
	}
	if !validation.Valid {
		return result
	}

	ordered, orderErrs := TopologicalOrder(g)
	if len(orderErrs) > 0 {
		// A structurally valid graph always orders cleanly; treat a
		// failure here as a caller bug (spec.md §7) and degrade rather
		// than throw.
		return result
	}

	warnings := ReviewArchitecture(g, ordered)
	performance, metrics := Simulate(g, ordered, profile)
	recommendations := GenerateRecommendations(performance, metrics, warnings)

	result.Warnings = warnings
	result.Performance = performance
	result.NodeMetrics = metrics
	result.Recommendations = recommendations
	return result
}
