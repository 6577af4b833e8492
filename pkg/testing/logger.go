package olaptesting

import (
	"log/slog"
	"os"
)

// NewLogger returns a slog logger for tests. Logs are suppressed unless the
// DEBUG environment variable asks for more: "1" enables info, "2" enables
// debug.
func NewLogger() *slog.Logger {
	var level slog.Level
	switch os.Getenv("DEBUG") {
	case "2":
		level = slog.LevelDebug
	case "1":
		level = slog.LevelInfo
	default:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
