package main

import (
	"io"
	"log/slog"
)

func initTrace(w io.Writer, debugLevel string, noLogTime bool) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if noLogTime {
		handlerOptions.ReplaceAttr = func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{} // Remove the time attribute
			}
			return a
		}
	}

	switch debugLevel {
	case "debug":
		handlerOptions.Level = slog.LevelDebug
		handlerOptions.AddSource = true
	case "warn":
		handlerOptions.Level = slog.LevelWarn
	case "error":
		handlerOptions.Level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(w, handlerOptions))
}
