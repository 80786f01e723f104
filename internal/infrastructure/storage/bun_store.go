package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/smilemakc/archsim/internal/domain"
)

// BunWorkspaceStore persists Workspace rows to Postgres. It is the
// Go-native counterpart of the Python SQLAlchemy Workspace model: a single
// table with JSONB graph_json/metadata_json columns and no child entities,
// so the teacher's multi-table transactional upsert collapses to one
// insert with an ON CONFLICT clause.
type BunWorkspaceStore struct {
	db *bun.DB
}

// NewBunWorkspaceStore opens a Postgres connection using dsn and wraps it
// in a bun.DB, following the teacher's pgdriver/pgdialect wiring.
func NewBunWorkspaceStore(dsn string) *BunWorkspaceStore {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &BunWorkspaceStore{db: db}
}

// InitSchema creates the workspaces table if it doesn't already exist.
func (s *BunWorkspaceStore) InitSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*workspaceModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Ping checks that the database is reachable.
func (s *BunWorkspaceStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *BunWorkspaceStore) Close() error {
	return s.db.Close()
}

type workspaceModel struct {
	bun.BaseModel `bun:"table:workspaces,alias:w"`

	ID        uuid.UUID       `bun:"id,pk"`
	UserID    string          `bun:"user_id"`
	Name      string          `bun:"name"`
	Type      string          `bun:"type"`
	PresetID  *string         `bun:"preset_id"`
	GraphJSON json.RawMessage `bun:"graph_json,type:jsonb"`
	Metadata  json.RawMessage `bun:"metadata_json,type:jsonb"`
	CreatedAt time.Time       `bun:"created_at"`
	UpdatedAt time.Time       `bun:"updated_at"`
}

func newWorkspaceModel(w *domain.Workspace) *workspaceModel {
	return &workspaceModel{
		ID:        w.ID(),
		UserID:    w.UserID(),
		Name:      w.Name(),
		Type:      string(w.Type()),
		PresetID:  w.PresetID(),
		GraphJSON: w.Graph(),
		Metadata:  w.Metadata(),
		CreatedAt: w.CreatedAt(),
		UpdatedAt: w.UpdatedAt(),
	}
}

func (m *workspaceModel) toDomain() *domain.Workspace {
	return domain.ReconstructWorkspace(
		m.ID, m.UserID, m.Name, domain.WorkspaceType(m.Type), m.PresetID,
		m.GraphJSON, m.Metadata, m.CreatedAt, m.UpdatedAt,
	)
}

// Save upserts a workspace row by id.
func (s *BunWorkspaceStore) Save(ctx context.Context, w *domain.Workspace) error {
	model := newWorkspaceModel(w)
	_, err := s.db.NewInsert().Model(model).On("CONFLICT (id) DO UPDATE").Exec(ctx)
	return err
}

// Get fetches a workspace by id.
func (s *BunWorkspaceStore) Get(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	model := new(workspaceModel)
	if err := s.db.NewSelect().Model(model).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// ListByUser returns every workspace belonging to userID, most recently
// updated first.
func (s *BunWorkspaceStore) ListByUser(ctx context.Context, userID string) ([]*domain.Workspace, error) {
	var models []workspaceModel
	err := s.db.NewSelect().Model(&models).Where("user_id = ?", userID).Order("updated_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Workspace, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out, nil
}

// Delete removes a workspace by id. It reports whether a row was deleted.
func (s *BunWorkspaceStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.NewDelete().Model((*workspaceModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
