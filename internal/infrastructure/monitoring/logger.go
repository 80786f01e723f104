// Package monitoring provides the evaluation-path logging and metrics
// collection the rest of this repository's ambient stack expects:
// structured, per-call records plus running counters, kept separate from
// the core's own pure evaluate() call.
package monitoring

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/smilemakc/archsim/internal/domain"
)

// EvaluationLogger emits one structured record per evaluate() call. It uses
// zerolog rather than the process-wide slog logger because this is a
// log-volume-sensitive path (potentially one record per user keystroke in
// an interactive editor) where zerolog's allocation-free field builder
// matters.
type EvaluationLogger struct {
	log zerolog.Logger
}

// NewEvaluationLogger creates an EvaluationLogger writing JSON lines to w.
// Passing nil uses os.Stdout.
func NewEvaluationLogger(w *os.File) *EvaluationLogger {
	if w == nil {
		w = os.Stdout
	}
	return &EvaluationLogger{log: zerolog.New(w).With().Timestamp().Logger()}
}

// LogEvaluation records the outcome of one evaluate() call.
func (l *EvaluationLogger) LogEvaluation(result domain.EvaluationResult, nodeCount, edgeCount int, duration time.Duration) {
	event := l.log.Info()
	if !result.Validation.Valid {
		event = l.log.Warn()
	}
	event.
		Int("node_count", nodeCount).
		Int("edge_count", edgeCount).
		Bool("valid", result.Validation.Valid).
		Int("error_count", len(result.Validation.Errors)).
		Int("warning_count", len(result.Warnings)).
		Str("bottleneck_component", result.Performance.BottleneckComponent).
		Float64("error_rate", result.Performance.ErrorRate).
		Dur("duration", duration).
		Msg("graph evaluated")
}

// LogValidationOnly records a validate()-only call (no simulation run).
func (l *EvaluationLogger) LogValidationOnly(result domain.ValidationResult, nodeCount, edgeCount int, duration time.Duration) {
	event := l.log.Info()
	if !result.Valid {
		event = l.log.Warn()
	}
	event.
		Int("node_count", nodeCount).
		Int("edge_count", edgeCount).
		Bool("valid", result.Valid).
		Int("error_count", len(result.Errors)).
		Dur("duration", duration).
		Msg("graph validated")
}
