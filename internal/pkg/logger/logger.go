// Package logger adapts log/slog to the ports.Logger abstraction.
package logger

import (
	"log/slog"
	"os"
)

// SlogLogger routes application logs through a slog handler.
type SlogLogger struct {
	log *slog.Logger
}

// New creates a text-handler logger. Verbose enables debug output.
func New(verbose bool) *SlogLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &SlogLogger{log: slog.New(handler)}
}

func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, args(fields)...)
}

func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, args(fields)...)
}

func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, args(fields)...)
}

func (l *SlogLogger) Error(msg string, err error, fields map[string]interface{}) {
	kv := args(fields)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	l.log.Error(msg, kv...)
}

func args(fields map[string]interface{}) []any {
	kv := make([]any, 0, len(fields)*2)
	for key, value := range fields {
		kv = append(kv, key, value)
	}
	return kv
}
