package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smilemakc/archsim/internal/domain"
	"github.com/smilemakc/archsim/internal/engine"
)

func TestReviewArchitectureNoServer(t *testing.T) {
	g := domain.Graph{Nodes: []domain.Node{
		node("user", "User", cfg()),
		node("q", "Queue", cfg()),
	}}
	warnings := engine.ReviewArchitecture(g, []string{"user", "q"})
	assert.Contains(t, warnings, "No server layer detected; add an application server tier.")
}

func TestReviewArchitectureDatabaseExposed(t *testing.T) {
	g := domain.Graph{Nodes: []domain.Node{
		node("user", "User", cfg()),
		node("db", "Database", cfg()),
	}}
	warnings := engine.ReviewArchitecture(g, []string{"user", "db"})
	assert.Contains(t, warnings, "Database is directly exposed to users; add a server layer.")
}

func TestReviewArchitectureSingleServer(t *testing.T) {
	g := domain.Graph{Nodes: []domain.Node{
		node("user", "User", cfg()),
		node("server", "Server", cfg()),
		node("queue", "Queue", cfg()),
	}}
	warnings := engine.ReviewArchitecture(g, []string{"user", "server", "queue"})
	assert.Contains(t, warnings, "Single server instance detected; potential single point of failure.")
}

func TestReviewArchitectureNoScalingBuffer(t *testing.T) {
	g := domain.Graph{Nodes: []domain.Node{
		node("user", "User", cfg()),
		node("server", "Server", cfg()),
		node("server2", "Server", cfg()),
	}}
	warnings := engine.ReviewArchitecture(g, []string{"user", "server", "server2"})
	assert.Contains(t, warnings, "No scaling buffer detected (cache/queue/rate limiter).")
}
