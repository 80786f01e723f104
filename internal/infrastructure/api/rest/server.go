package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/smilemakc/archsim/internal/domain"
	"github.com/smilemakc/archsim/internal/engine"
	"github.com/smilemakc/archsim/internal/infrastructure/monitoring"
	"github.com/smilemakc/archsim/internal/infrastructure/storage"
	"github.com/smilemakc/archsim/internal/infrastructure/websocket"
)

// Server is the HTTP surface of the architecture simulator: the stateless
// /simulate and /api/validate endpoints backed directly by internal/engine,
// plus workspace persistence and the preset catalog, all routed with Go
// 1.22+ method patterns the way the teacher's rest/server.go does.
type Server struct {
	workspaces storage.WorkspaceStore
	presets    *storage.PresetCatalog
	filter     *storage.WorkspaceFilter
	broadcast  *websocket.EvaluationBroadcaster
	evalLog    *monitoring.EvaluationLogger
	metrics    *monitoring.EvaluationMetrics

	mux    *http.ServeMux
	logger *slog.Logger
}

// NewServer wires a Server from its collaborators.
func NewServer(
	workspaces storage.WorkspaceStore,
	presets *storage.PresetCatalog,
	broadcast *websocket.EvaluationBroadcaster,
	evalLog *monitoring.EvaluationLogger,
	metrics *monitoring.EvaluationMetrics,
	logger *slog.Logger,
) *Server {
	s := &Server{
		workspaces: workspaces,
		presets:    presets,
		filter:     storage.NewWorkspaceFilter(),
		broadcast:  broadcast,
		evalLog:    evalLog,
		metrics:    metrics,
		mux:        http.NewServeMux(),
		logger:     logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /simulate", s.handleSimulate)
	s.mux.HandleFunc("POST /api/validate", s.handleValidate)
	s.mux.HandleFunc("GET /api/presets", s.handleListPresets)
	s.mux.HandleFunc("GET /api/presets/{name}", s.handleGetPreset)
	s.mux.HandleFunc("GET /api/workspaces", s.handleListWorkspaces)
	s.mux.HandleFunc("POST /api/workspaces", s.handleCreateWorkspace)
	s.mux.HandleFunc("GET /api/workspaces/{id}", s.handleGetWorkspace)
	s.mux.HandleFunc("PATCH /api/workspaces/{id}", s.handleUpdateWorkspace)
	s.mux.HandleFunc("DELETE /api/workspaces/{id}", s.handleDeleteWorkspace)
	s.mux.HandleFunc("POST /api/workspaces/{id}/duplicate", s.handleDuplicateWorkspace)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("request received", "method", r.Method, "path", r.URL.Path)
	s.mux.ServeHTTP(w, r)
}

type evaluateRequest struct {
	Graph   domain.Graph           `json:"graph"`
	Traffic *domain.TrafficProfile `json:"traffic_profile,omitempty"`
}

// handleSimulate runs the full validate -> review -> simulate ->
// recommend pipeline against a graph posted in the request body.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	result := engine.Evaluate(req.Graph, req.Traffic)
	duration := time.Since(start)

	s.evalLog.LogEvaluation(result, len(req.Graph.Nodes), len(req.Graph.Edges), duration)
	s.metrics.Record(result.Validation.Valid, result.Performance.BottleneckComponent, duration)

	writeJSON(w, http.StatusOK, result)
}

type validateRequest struct {
	Graph domain.Graph `json:"graph"`
}

// handleValidate runs structural validation only, without simulating
// traffic flow.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	result := engine.Validate(req.Graph)
	duration := time.Since(start)

	s.evalLog.LogValidationOnly(result, len(req.Graph.Nodes), len(req.Graph.Edges), duration)

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.presets.List()
	if err != nil {
		s.logger.Error("failed to list presets", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list presets")
		return
	}
	writeJSON(w, http.StatusOK, presets)
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	preset, err := s.presets.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "preset not found")
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

func (s *Server) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id query parameter required")
		return
	}

	list, err := s.workspaces.ListByUser(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to list workspaces", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list workspaces")
		return
	}

	if expression := r.URL.Query().Get("filter"); expression != "" {
		list, err = s.filter.Apply(expression, list)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, toWorkspaceViews(list))
}

type createWorkspaceRequest struct {
	UserID   string               `json:"user_id"`
	Name     string               `json:"name"`
	Type     domain.WorkspaceType `json:"type"`
	PresetID *string              `json:"preset_id,omitempty"`
	Graph    json.RawMessage      `json:"graph_json,omitempty"`
	Metadata json.RawMessage      `json:"metadata_json,omitempty"`
}

func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req createWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "user_id and name are required")
		return
	}

	ws := domain.NewWorkspace(req.UserID, req.Name, req.Type, req.PresetID, req.Graph, req.Metadata)
	if err := s.workspaces.Save(r.Context(), ws); err != nil {
		s.logger.Error("failed to save workspace", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save workspace")
		return
	}

	writeJSON(w, http.StatusCreated, toWorkspaceView(ws))
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseWorkspaceID(w, r)
	if !ok {
		return
	}
	ws, err := s.workspaces.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "workspace not found")
		return
	}
	writeJSON(w, http.StatusOK, toWorkspaceView(ws))
}

type updateWorkspaceRequest struct {
	Name  *string         `json:"name,omitempty"`
	Graph json.RawMessage `json:"graph_json,omitempty"`
}

func (s *Server) handleUpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseWorkspaceID(w, r)
	if !ok {
		return
	}
	ws, err := s.workspaces.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "workspace not found")
		return
	}

	var req updateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name != nil {
		ws.Rename(*req.Name)
	}
	if req.Graph != nil {
		ws.ReplaceGraph(req.Graph)
	}

	if err := s.workspaces.Save(r.Context(), ws); err != nil {
		s.logger.Error("failed to save workspace", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save workspace")
		return
	}

	if req.Graph != nil {
		s.publishEvaluation(ws)
	}

	writeJSON(w, http.StatusOK, toWorkspaceView(ws))
}

func (s *Server) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseWorkspaceID(w, r)
	if !ok {
		return
	}
	deleted, err := s.workspaces.Delete(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to delete workspace", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete workspace")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "workspace not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type duplicateWorkspaceRequest struct {
	Name string `json:"name,omitempty"`
}

func (s *Server) handleDuplicateWorkspace(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseWorkspaceID(w, r)
	if !ok {
		return
	}
	ws, err := s.workspaces.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "workspace not found")
		return
	}

	var req duplicateWorkspaceRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	dup := ws.Duplicate(req.Name)
	if err := s.workspaces.Save(r.Context(), dup); err != nil {
		s.logger.Error("failed to save workspace", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save workspace")
		return
	}

	writeJSON(w, http.StatusCreated, toWorkspaceView(dup))
}

// publishEvaluation re-runs the core pipeline against a workspace's
// current graph and broadcasts the outcome, used whenever a persisted
// graph changes so subscribed clients stay live-updated.
func (s *Server) publishEvaluation(ws *domain.Workspace) {
	var graph domain.Graph
	if err := json.Unmarshal(ws.Graph(), &graph); err != nil {
		return
	}
	result := engine.Evaluate(graph, nil)
	s.broadcast.PublishEvaluation(ws.ID().String(), result)
}

func (s *Server) parseWorkspaceID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workspace id")
		return uuid.UUID{}, false
	}
	return id, true
}

type workspaceView struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	Name      string               `json:"name"`
	Type      domain.WorkspaceType `json:"type"`
	PresetID  *string              `json:"preset_id,omitempty"`
	Graph     json.RawMessage      `json:"graph_json"`
	Metadata  json.RawMessage      `json:"metadata_json"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func toWorkspaceView(w *domain.Workspace) workspaceView {
	return workspaceView{
		ID:        w.ID().String(),
		UserID:    w.UserID(),
		Name:      w.Name(),
		Type:      w.Type(),
		PresetID:  w.PresetID(),
		Graph:     w.Graph(),
		Metadata:  w.Metadata(),
		CreatedAt: w.CreatedAt(),
		UpdatedAt: w.UpdatedAt(),
	}
}

func toWorkspaceViews(list []*domain.Workspace) []workspaceView {
	out := make([]workspaceView, len(list))
	for i, w := range list {
		out[i] = toWorkspaceView(w)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
