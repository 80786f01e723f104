package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smilemakc/archsim/internal/infrastructure/api/rest"
	"github.com/smilemakc/archsim/internal/infrastructure/config"
	"github.com/smilemakc/archsim/internal/infrastructure/logger"
	"github.com/smilemakc/archsim/internal/infrastructure/monitoring"
	"github.com/smilemakc/archsim/internal/infrastructure/storage"
	"github.com/smilemakc/archsim/internal/infrastructure/websocket"
)

func main() {
	var port = flag.String("port", "", "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != "" {
		cfg.Port = *port
	}

	log := logger.Setup(cfg)
	log.Info("starting archsim server", "port", cfg.Port, "presets_dir", cfg.PresetsDir)

	var workspaces storage.WorkspaceStore
	ctx := context.Background()
	if cfg.DatabaseDSN != "" {
		bunStore := storage.NewBunWorkspaceStore(cfg.DatabaseDSN)
		if err := bunStore.InitSchema(ctx); err != nil {
			log.Error("failed to initialize database schema", "error", err)
			os.Exit(1)
		}
		log.Info("using BunWorkspaceStore (PostgreSQL)", "dsn", maskDSN(cfg.DatabaseDSN))
		workspaces = bunStore
	} else {
		log.Info("no DATABASE_DSN set, using in-memory workspace store")
		workspaces = storage.NewMemoryWorkspaceStore()
	}

	presets := storage.NewPresetCatalog(cfg.PresetsDir)
	evalLog := monitoring.NewEvaluationLogger(nil)
	metrics := monitoring.NewEvaluationMetrics()

	hub := websocket.NewHub(log)
	go hub.Run()
	broadcaster := websocket.NewEvaluationBroadcaster(hub)
	wsHandler := websocket.NewHandler(hub, websocket.NewHeaderAuth(""), log)

	srv := rest.NewServer(workspaces, presets, broadcaster, evalLog, metrics, log)

	mux := http.NewServeMux()
	mux.Handle("/", srv)
	mux.Handle("/ws", wsHandler)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("available endpoints",
		"simulate", "POST /simulate",
		"validate", "POST /api/validate",
		"presets", "GET /api/presets",
		"workspaces", "GET /api/workspaces",
		"live_updates", "GET /ws",
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited gracefully")
}

// maskDSN masks the password in a DSN string for safe logging.
func maskDSN(dsn string) string {
	if len(dsn) == 0 {
		return ""
	}

	start := -1
	end := -1
	for i := 0; i < len(dsn); i++ {
		if dsn[i] == ':' && start == -1 {
			if i+1 < len(dsn) && dsn[i+1] != '/' {
				start = i + 1
			}
		}
		if dsn[i] == '@' && start != -1 {
			end = i
			break
		}
	}

	if start != -1 && end != -1 && end > start {
		return dsn[:start] + "***" + dsn[end:]
	}
	return dsn
}
