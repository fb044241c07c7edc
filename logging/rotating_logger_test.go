package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRotatingLoggerWritesCurrentWeekFile(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 4)
	defer rl.currentFile.Close()

	msg := []byte("hello log\n")
	n, err := rl.Write(msg)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != len(msg) {
		t.Errorf("wrote %d bytes, want %d", n, len(msg))
	}

	want := filepath.Join(dir, fmt.Sprintf("app-%s.log", weekKey(time.Now())))
	content, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("expected log file %s: %v", want, err)
	}
	if string(content) != string(msg) {
		t.Errorf("file content = %q, want %q", content, msg)
	}
}

func TestWeekKey(t *testing.T) {
	// 2024-01-04 is a Thursday in ISO week 1.
	ts := time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)
	if got := weekKey(ts); got != "2024-W01" {
		t.Errorf("weekKey = %q, want 2024-W01", got)
	}
}

func TestRotatingLoggerSizeLimitStartsContinuationFile(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 4)
	rl.maxFileSize = 32
	defer rl.currentFile.Close()

	line := []byte(strings.Repeat("x", 20) + "\n")
	for i := 0; i < 3; i++ {
		if _, err := rl.Write(line); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	week := weekKey(time.Now())
	if _, err := os.Stat(filepath.Join(dir, fmt.Sprintf("app-%s.log", week))); err != nil {
		t.Errorf("base file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, fmt.Sprintf("app-%s_01.log", week))); err != nil {
		t.Errorf("continuation file missing: %v", err)
	}
}

func TestCleanupOldLogsRemovesExpiredFiles(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 1)

	old := filepath.Join(dir, "app-2020-W01.log")
	if err := os.WriteFile(old, []byte("stale"), 0666); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().Add(-30 * 24 * time.Hour)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}
	fresh := filepath.Join(dir, fmt.Sprintf("app-%s.log", weekKey(time.Now())))
	if err := os.WriteFile(fresh, []byte("current"), 0666); err != nil {
		t.Fatal(err)
	}
	unrelated := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(unrelated, []byte("keep"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(unrelated, stale, stale); err != nil {
		t.Fatal(err)
	}

	if err := rl.cleanupOldLogs(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expired log file was not removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("current log file should survive cleanup")
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Error("non-log file should survive cleanup")
	}
}

func TestRotatingLoggerConcurrentWrites(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 4)
	defer rl.currentFile.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := rl.Write([]byte(fmt.Sprintf("worker %d line %d\n", n, j))); err != nil {
					t.Errorf("concurrent write failed: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	content, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("app-%s.log", weekKey(time.Now()))))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Count(string(content), "\n")
	if lines != 20*50 {
		t.Errorf("got %d lines, want %d", lines, 20*50)
	}
}

func TestSetupLoggerFallsBackToConsole(t *testing.T) {
	// A file path cannot be used as a directory.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0666); err != nil {
		t.Fatal(err)
	}

	logger := SetupLogger(filepath.Join(blocker, "logs"))
	if logger == nil {
		t.Fatal("SetupLogger returned nil")
	}
	// Must not panic when used.
	logger.Info("console fallback works")
}

func TestMultiHandlerFansOut(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 4)
	defer rl.Close()

	fileHandler := slog.NewJSONHandler(rl, &slog.HandlerOptions{Level: slog.LevelInfo})
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(&multiHandler{handlers: []slog.Handler{textHandler, fileHandler}})

	logger.With("component", "test").WithGroup("req").Info("fan out", "k", "v")

	content, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("app-%s.log", weekKey(time.Now()))))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "fan out") {
		t.Errorf("file handler did not receive record: %s", content)
	}
}

func TestGlobalHelpersWorkUninitialized(t *testing.T) {
	saved := DefaultLoggingService
	DefaultLoggingService = nil
	defer func() { DefaultLoggingService = saved }()

	// Must not panic before InitLogger runs.
	Info("info before init")
	Warn("warn before init", "k", "v")
	Error("error before init")
	Debug("debug before init")
}
