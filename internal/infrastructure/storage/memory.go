package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/smilemakc/archsim/internal/domain"
)

// MemoryWorkspaceStore is an in-process WorkspaceStore backed by a
// mutex-guarded map, used for local development and tests in place of
// Postgres.
type MemoryWorkspaceStore struct {
	mu         sync.RWMutex
	workspaces map[uuid.UUID]*domain.Workspace
}

// NewMemoryWorkspaceStore creates an empty MemoryWorkspaceStore.
func NewMemoryWorkspaceStore() *MemoryWorkspaceStore {
	return &MemoryWorkspaceStore{
		workspaces: make(map[uuid.UUID]*domain.Workspace),
	}
}

func (s *MemoryWorkspaceStore) Save(ctx context.Context, w *domain.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces[w.ID()] = w
	return nil
}

func (s *MemoryWorkspaceStore) Get(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workspaces[id]
	if !ok {
		return nil, fmt.Errorf("workspace not found: %s", id)
	}
	return w, nil
}

func (s *MemoryWorkspaceStore) ListByUser(ctx context.Context, userID string) ([]*domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Workspace, 0, len(s.workspaces))
	for _, w := range s.workspaces {
		if w.UserID() == userID {
			out = append(out, w)
		}
	}
	sortWorkspacesByUpdatedAtDesc(out)
	return out, nil
}

func (s *MemoryWorkspaceStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workspaces[id]; !ok {
		return false, nil
	}
	delete(s.workspaces, id)
	return true, nil
}

func sortWorkspacesByUpdatedAtDesc(ws []*domain.Workspace) {
	for i := 1; i < len(ws); i++ {
		for j := i; j > 0 && ws[j-1].UpdatedAt().Before(ws[j].UpdatedAt()); j-- {
			ws[j-1], ws[j] = ws[j], ws[j-1]
		}
	}
}
