package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pullweights/mcp/internal/cli"
)

func main() {
	// A missing .env file is not an error; the environment may already be set.
	_ = godotenv.Load()

	logger := newLogger(os.Getenv("PULLWEIGHTS_LOG"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.New(logger).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger. Output always goes to stderr:
// stdout belongs to the MCP protocol while serving.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
