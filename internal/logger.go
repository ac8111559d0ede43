package internal

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// NewLogger builds the service logger: JSON with RFC3339Nano timestamps in
// prod, text elsewhere. An unknown level falls back to info and is reported
// through the returned logger.
func NewLogger(w io.Writer, env string, level string) *slog.Logger {
	lvl, ok := parseLevel(level)

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if env == "prod" {
		opts.ReplaceAttr = rfc3339Time
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(h).With(slog.String("service", "vendas"))
	if !ok {
		logger.Warn("invalid log level, using info", slog.String("value", level))
	}
	return logger
}

func parseLevel(level string) (slog.Level, bool) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, false
	}
	return l, true
}

func rfc3339Time(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339Nano))
	}
	return a
}
