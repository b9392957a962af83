package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/app"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/logger"
)

func main() {
	slog.SetDefault(slog.New(logger.NewPrettyHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	})))

	application, err := app.New()
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

// logLevel reads LOG_LEVEL; anything unrecognized falls back to info.
func logLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
