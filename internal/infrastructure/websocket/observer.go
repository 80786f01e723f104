package websocket

import (
	"github.com/smilemakc/archsim/internal/domain"
)

// EvaluationBroadcaster pushes a design.evaluated event whenever a
// persisted workspace is re-evaluated, adapted from the teacher's
// SocketObserver: same "wrap a Broadcaster and translate domain events
// into WSEvents" shape, retargeted from workflow-execution lifecycle
// events (node.started/completed/failed) to a single evaluation event,
// since the core here runs synchronously and has no node-level lifecycle
// to stream.
type EvaluationBroadcaster struct {
	broadcaster Broadcaster
}

// NewEvaluationBroadcaster wraps broadcaster for use by REST handlers.
func NewEvaluationBroadcaster(broadcaster Broadcaster) *EvaluationBroadcaster {
	return &EvaluationBroadcaster{broadcaster: broadcaster}
}

// PublishEvaluation sends result to every client subscribed to workspaceID.
func (b *EvaluationBroadcaster) PublishEvaluation(workspaceID string, result domain.EvaluationResult) {
	b.broadcaster.Broadcast(workspaceID, NewDesignEvaluatedEvent(workspaceID, result))
}
