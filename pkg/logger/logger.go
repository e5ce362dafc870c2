// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var handler atomic.Pointer[slog.Logger]

func init() {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("NOVACAL_DEBUG"), "true") || os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}
	handler.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// SetDebug switches the process-wide log level.
func SetDebug(enabled bool) {
	level := slog.LevelInfo
	if enabled {
		level = slog.LevelDebug
	}
	handler.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func log(level slog.Level, component, msg string, fields map[string]any) {
	attrs := make([]any, 0, 2+2*len(fields))
	attrs = append(attrs, "component", component)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	handler.Load().Log(context.Background(), level, msg, attrs...)
}

// InfoC logs an informational message for a component.
func InfoC(component, msg string) { log(slog.LevelInfo, component, msg, nil) }

// InfoCF logs an informational message with structured fields.
func InfoCF(component, msg string, fields map[string]any) { log(slog.LevelInfo, component, msg, fields) }

// WarnC logs a warning for a component.
func WarnC(component, msg string) { log(slog.LevelWarn, component, msg, nil) }

// WarnCF logs a warning with structured fields.
func WarnCF(component, msg string, fields map[string]any) { log(slog.LevelWarn, component, msg, fields) }

// ErrorC logs an error for a component.
func ErrorC(component, msg string) { log(slog.LevelError, component, msg, nil) }

// ErrorCF logs an error with structured fields.
func ErrorCF(component, msg string, fields map[string]any) {
	log(slog.LevelError, component, msg, fields)
}

// DebugC logs a debug message for a component.
func DebugC(component, msg string) { log(slog.LevelDebug, component, msg, nil) }

// DebugCF logs a debug message with structured fields.
func DebugCF(component, msg string, fields map[string]any) {
	log(slog.LevelDebug, component, msg, fields)
}

// Truncate shortens s to at most maxLen bytes for log previews, collapsing
// newlines so entries stay on one line.
func Truncate(s string, maxLen int) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
