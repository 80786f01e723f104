package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/smilemakc/archsim/internal/infrastructure/config"
)

// Setup builds the process-wide slog logger from cfg.LogLevel, installs it
// as the slog default, and tags every record with the service name so
// archsim's output is distinguishable in aggregated logs.
func Setup(cfg *config.Config) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l})
	log := slog.New(handler).With("service", "archsim")
	slog.SetDefault(log)

	return log
}
