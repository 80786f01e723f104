package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/archsim/internal/domain"
)

type fakeBroadcaster struct {
	workspaceID string
	event       *WSEvent
}

func (f *fakeBroadcaster) Broadcast(workspaceID string, event *WSEvent) {
	f.workspaceID = workspaceID
	f.event = event
}

func TestEvaluationBroadcaster_PublishEvaluation(t *testing.T) {
	fake := &fakeBroadcaster{}
	b := NewEvaluationBroadcaster(fake)

	result := domain.EvaluationResult{
		Validation:  domain.ValidationResult{Valid: false},
		Performance: domain.PerformanceSummary{BottleneckComponent: "Cache"},
	}
	b.PublishEvaluation("ws-7", result)

	require.NotNil(t, fake.event)
	assert.Equal(t, "ws-7", fake.workspaceID)
	assert.Equal(t, EventDesignEvaluated, fake.event.Type)
	assert.False(t, fake.event.Valid)
	assert.Equal(t, "Cache", fake.event.Bottleneck)
}
