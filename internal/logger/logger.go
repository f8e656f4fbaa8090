package logger

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

func Init() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	Logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(Logger)

	return Logger
}
