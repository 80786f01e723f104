package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// WorkspaceType classifies the session a workspace was created for.
type WorkspaceType string

const (
	WorkspacePractice   WorkspaceType = "PRACTICE"
	WorkspaceLearn      WorkspaceType = "LEARN"
	WorkspaceEvaluation WorkspaceType = "EVALUATION"
	WorkspaceStress     WorkspaceType = "STRESS"
)

// Workspace is a saved design-in-progress: the graph a user is editing, not
// a cached evaluation result. Fields are private with a constructor pair
// (New for freshly created workspaces, Reconstruct for loading persisted
// rows) and getters, matching how the rest of this codebase treats entities
// with an identity and a lifecycle.
type Workspace struct {
	id        uuid.UUID
	userID    string
	name      string
	kind      WorkspaceType
	presetID  *string
	graph     json.RawMessage
	metadata  json.RawMessage
	createdAt time.Time
	updatedAt time.Time
}

// NewWorkspace creates a brand new workspace with a fresh id.
func NewWorkspace(userID, name string, kind WorkspaceType, presetID *string, graph, metadata json.RawMessage) *Workspace {
	now := time.Now().UTC()
	if graph == nil {
		graph = json.RawMessage(`{}`)
	}
	if metadata == nil {
		metadata = json.RawMessage(`{}`)
	}
	return &Workspace{
		id:        uuid.New(),
		userID:    userID,
		name:      name,
		kind:      kind,
		presetID:  presetID,
		graph:     graph,
		metadata:  metadata,
		createdAt: now,
		updatedAt: now,
	}
}

// ReconstructWorkspace rebuilds a Workspace from persisted fields, without
// re-deriving id or timestamps.
func ReconstructWorkspace(id uuid.UUID, userID, name string, kind WorkspaceType, presetID *string, graph, metadata json.RawMessage, createdAt, updatedAt time.Time) *Workspace {
	return &Workspace{
		id:        id,
		userID:    userID,
		name:      name,
		kind:      kind,
		presetID:  presetID,
		graph:     graph,
		metadata:  metadata,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (w *Workspace) ID() uuid.UUID            { return w.id }
func (w *Workspace) UserID() string           { return w.userID }
func (w *Workspace) Name() string             { return w.name }
func (w *Workspace) Type() WorkspaceType      { return w.kind }
func (w *Workspace) PresetID() *string        { return w.presetID }
func (w *Workspace) Graph() json.RawMessage   { return w.graph }
func (w *Workspace) Metadata() json.RawMessage { return w.metadata }
func (w *Workspace) CreatedAt() time.Time     { return w.createdAt }
func (w *Workspace) UpdatedAt() time.Time     { return w.updatedAt }

// Rename updates the display name and bumps UpdatedAt.
func (w *Workspace) Rename(name string) {
	w.name = name
	w.updatedAt = time.Now().UTC()
}

// ReplaceGraph swaps the stored graph_json and bumps UpdatedAt.
func (w *Workspace) ReplaceGraph(graph json.RawMessage) {
	w.graph = graph
	w.updatedAt = time.Now().UTC()
}

// Duplicate returns a new workspace with a fresh id copying this one's
// content, named newName (or "<name> (copy)" when newName is empty).
func (w *Workspace) Duplicate(newName string) *Workspace {
	if newName == "" {
		newName = w.name + " (copy)"
	}
	return NewWorkspace(w.userID, newName, w.kind, w.presetID, w.graph, w.metadata)
}
