package websocket

import (
	"time"

	"github.com/smilemakc/archsim/internal/domain"
)

// Event types (server -> client). There is only one: a workspace's graph
// was just re-evaluated.
const EventDesignEvaluated = "design.evaluated"

// Command types (client -> server)
const (
	CmdSubscribe   = "subscribe"
	CmdUnsubscribe = "unsubscribe"
)

// WSEvent is pushed to every client subscribed to a workspace whenever
// that workspace's graph is replaced and re-evaluated.
type WSEvent struct {
	Type        string                    `json:"type"`
	Timestamp   time.Time                 `json:"timestamp"`
	WorkspaceID string                    `json:"workspace_id"`
	Performance domain.PerformanceSummary `json:"performance"`
	Valid       bool                      `json:"valid"`
	Bottleneck  string                    `json:"bottleneck_component"`
}

// WSCommand is sent from client to server to manage subscriptions.
type WSCommand struct {
	Action      string `json:"action"`
	WorkspaceID string `json:"workspace_id"`
}

// WSResponse replies to a client command.
type WSResponse struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewDesignEvaluatedEvent builds the event broadcast after a workspace is
// simulated.
func NewDesignEvaluatedEvent(workspaceID string, result domain.EvaluationResult) *WSEvent {
	return &WSEvent{
		Type:        EventDesignEvaluated,
		Timestamp:   time.Now(),
		WorkspaceID: workspaceID,
		Performance: result.Performance,
		Valid:       result.Validation.Valid,
		Bottleneck:  result.Performance.BottleneckComponent,
	}
}

func newSuccessResponse(responseType, message string) *WSResponse {
	return &WSResponse{Type: responseType, Success: true, Message: message}
}

func newErrorResponse(responseType, errorMsg string) *WSResponse {
	return &WSResponse{Type: responseType, Success: false, Error: errorMsg}
}
