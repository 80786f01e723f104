package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/archsim/internal/domain"
)

func TestWorkspaceFilter_Apply(t *testing.T) {
	f := NewWorkspaceFilter()

	stress := domain.NewWorkspace("u1", "load test", domain.WorkspaceStress, nil, nil, nil)
	practice := domain.NewWorkspace("u1", "practice run", domain.WorkspacePractice, nil, nil, nil)

	out, err := f.Apply(`type == "STRESS"`, []*domain.Workspace{stress, practice})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, stress.ID(), out[0].ID())
}

func TestWorkspaceFilter_EmptyExpressionMatchesAll(t *testing.T) {
	f := NewWorkspaceFilter()
	ws := []*domain.Workspace{
		domain.NewWorkspace("u1", "a", domain.WorkspacePractice, nil, nil, nil),
		domain.NewWorkspace("u1", "b", domain.WorkspaceLearn, nil, nil, nil),
	}
	out, err := f.Apply("", ws)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestWorkspaceFilter_InvalidExpressionErrors(t *testing.T) {
	f := NewWorkspaceFilter()
	_, err := f.Apply("type ==", []*domain.Workspace{domain.NewWorkspace("u", "w", domain.WorkspacePractice, nil, nil, nil)})
	assert.Error(t, err)
}
