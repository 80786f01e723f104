package storage

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/smilemakc/archsim/internal/domain"
)

// WorkspaceFilter evaluates ad-hoc boolean expressions over listed
// workspaces (e.g. `type == "STRESS" && preset_id != ""`), condensed from
// the teacher's ConditionEvaluator: same compile-and-cache-by-source
// approach, retargeted from conditional edges to workspace queries.
type WorkspaceFilter struct {
	mu    sync.RWMutex
	cache map[string]*vm.Program
}

// NewWorkspaceFilter creates an empty WorkspaceFilter.
func NewWorkspaceFilter() *WorkspaceFilter {
	return &WorkspaceFilter{cache: make(map[string]*vm.Program)}
}

// Apply returns the subset of workspaces for which expression evaluates to
// true. An empty expression matches everything.
func (f *WorkspaceFilter) Apply(expression string, workspaces []*domain.Workspace) ([]*domain.Workspace, error) {
	if expression == "" {
		return workspaces, nil
	}

	program, err := f.compile(expression)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Workspace, 0, len(workspaces))
	for _, w := range workspaces {
		presetID := ""
		if w.PresetID() != nil {
			presetID = *w.PresetID()
		}
		env := map[string]any{
			"id":        w.ID().String(),
			"user_id":   w.UserID(),
			"name":      w.Name(),
			"type":      string(w.Type()),
			"preset_id": presetID,
		}
		result, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("evaluating workspace filter: %w", err)
		}
		match, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("workspace filter %q did not return a boolean", expression)
		}
		if match {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *WorkspaceFilter) compile(expression string) (*vm.Program, error) {
	f.mu.RLock()
	program, ok := f.cache[expression]
	f.mu.RUnlock()
	if ok {
		return program, nil
	}

	env := map[string]any{"id": "", "user_id": "", "name": "", "type": "", "preset_id": ""}
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid workspace filter %q: %w", expression, err)
	}

	f.mu.Lock()
	f.cache[expression] = program
	f.mu.Unlock()
	return program, nil
}
