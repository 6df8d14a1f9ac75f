package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingWriter writes to one log file per ISO week and removes files
// older than the retention period on rotation.
type RotatingWriter struct {
	logDir      string
	retention   time.Duration
	mu          sync.Mutex
	currentFile *os.File
	currentWeek string
}

// NewRotatingWriter creates a writer rotating weekly under logDir.
func NewRotatingWriter(logDir string, retentionWeeks int) (*RotatingWriter, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}
	return &RotatingWriter{
		logDir:    logDir,
		retention: time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
	}, nil
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (rw *RotatingWriter) Write(p []byte) (int, error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	week := weekKey(time.Now())
	if rw.currentFile == nil || week != rw.currentWeek {
		if err := rw.rotate(week); err != nil {
			return 0, err
		}
	}
	return rw.currentFile.Write(p)
}

// rotate opens the file for the target week and prunes expired files.
// Caller must hold the lock.
func (rw *RotatingWriter) rotate(week string) error {
	if rw.currentFile != nil {
		if err := rw.currentFile.Close(); err != nil {
			slog.Warn("Failed to close log file during rotation", "error", err)
		}
		rw.currentFile = nil
	}

	logPath := filepath.Join(rw.logDir, fmt.Sprintf("app-%s.log", week))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}
	rw.currentFile = file
	rw.currentWeek = week

	rw.cleanup()
	return nil
}

// cleanup removes log files older than the retention period.
func (rw *RotatingWriter) cleanup() {
	if rw.retention <= 0 {
		return
	}
	entries, err := os.ReadDir(rw.logDir)
	if err != nil {
		slog.Warn("Failed to read log directory for cleanup", "error", err)
		return
	}
	cutoff := time.Now().Add(-rw.retention)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "app-") || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(rw.logDir, entry.Name())); err != nil {
				slog.Warn("Failed to remove expired log file", "file", entry.Name(), "error", err)
			}
		}
	}
}

// Close closes the current log file.
func (rw *RotatingWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.currentFile == nil {
		return nil
	}
	err := rw.currentFile.Close()
	rw.currentFile = nil
	return err
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// SetupLogger builds a logger writing JSON records to the rotating file
// and text records to stderr.
func SetupLogger(logDir string, level string, retentionWeeks int) (*slog.Logger, error) {
	rotating, err := NewRotatingWriter(logDir, retentionWeeks)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	fileHandler := slog.NewJSONHandler(rotating, opts)
	consoleHandler := slog.NewTextHandler(os.Stderr, opts)

	return slog.New(&teeHandler{handlers: []slog.Handler{consoleHandler, fileHandler}}), nil
}

// teeHandler fans one record out to several handlers.
type teeHandler struct {
	handlers []slog.Handler
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &teeHandler{handlers: handlers}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &teeHandler{handlers: handlers}
}
