package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/smilemakc/archsim/internal/domain"
)

// WorkspaceStore is the persistence boundary for domain.Workspace, with
// both a Postgres-backed (BunWorkspaceStore) and in-memory
// (MemoryWorkspaceStore) implementation.
type WorkspaceStore interface {
	Save(ctx context.Context, w *domain.Workspace) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Workspace, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

var (
	_ WorkspaceStore = (*BunWorkspaceStore)(nil)
	_ WorkspaceStore = (*MemoryWorkspaceStore)(nil)
)
