// Package archsim is the public surface of the architecture simulator: a
// directed graph of typed components goes in, and a validation result, a
// performance/recommendation evaluation, or a palette of known component
// types comes out. Everything here re-exports internal/domain and
// internal/engine types so the HTTP layer, CLI, and tests depend on one
// stable import path, following this repository's own convention of a
// thin root package over its internal engine.
package archsim

import (
	"github.com/smilemakc/archsim/internal/domain"
	"github.com/smilemakc/archsim/internal/engine"
	"github.com/smilemakc/archsim/internal/types"
)

// Type aliases so callers never need to import internal/domain directly.
type (
	Node                = domain.Node
	Edge                = domain.Edge
	Graph               = domain.Graph
	TrafficProfile      = domain.TrafficProfile
	ValidationResult    = domain.ValidationResult
	PerformanceSummary  = domain.PerformanceSummary
	NodeMetric          = domain.NodeMetric
	EvaluationResult    = domain.EvaluationResult
	CanonicalType       = types.CanonicalType
	Layer               = types.Layer
)

// Validate checks g for structural and layered-semantic legality.
func Validate(g Graph) ValidationResult {
	return engine.Validate(g)
}

// Simulate runs the full evaluate pipeline: validate, and when the graph is
// structurally legal, review, simulate flow, and recommend. traffic may be
// nil, in which case the simulator reads the first User node's config.
func Simulate(g Graph, traffic *TrafficProfile) EvaluationResult {
	return engine.Evaluate(g, traffic)
}

// CanonicalTypes lists the closed component-type set, for consumers
// rendering a node palette.
func CanonicalTypes() []CanonicalType {
	return types.AllCanonicalTypes()
}

// LayerOf returns the layer a canonical type belongs to.
func LayerOf(t CanonicalType) Layer {
	return types.LayerOf(t)
}

// NormalizeType maps a free-form type string to its canonical type.
func NormalizeType(raw string) CanonicalType {
	return types.Normalize(raw)
}
