package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeAgedFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	stamp := time.Now().Add(-age)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("age %s: %v", name, err)
	}
	return path
}

func TestCleanupRemovesExpiredFiles(t *testing.T) {
	dir := t.TempDir()
	old := writeAgedFile(t, dir, "frontend_info.20260301.log", 10*24*time.Hour)
	recent := writeAgedFile(t, dir, "frontend_info.20260820.log", 24*time.Hour)

	CleanupOldLogs(NewNop(), 7, RetentionTarget{Dir: dir, Pattern: "frontend_info.*"})

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expired file should be removed, stat err = %v", err)
	}
	if _, err := os.Stat(recent); err != nil {
		t.Fatalf("recent file should remain: %v", err)
	}
}

func TestCleanupHonorsPatternAndExcludes(t *testing.T) {
	dir := t.TempDir()
	other := writeAgedFile(t, dir, "unrelated.log", 30*24*time.Hour)
	current := writeAgedFile(t, dir, "frontend_info.20260101.log", 30*24*time.Hour)

	CleanupOldLogs(NewNop(), 7, RetentionTarget{
		Dir:     dir,
		Pattern: "frontend_info.*",
		Exclude: []string{current},
	})

	if _, err := os.Stat(other); err != nil {
		t.Fatalf("file outside the pattern should remain: %v", err)
	}
	if _, err := os.Stat(current); err != nil {
		t.Fatalf("excluded file should remain: %v", err)
	}
}

func TestCleanupDisabledByZeroRetention(t *testing.T) {
	dir := t.TempDir()
	old := writeAgedFile(t, dir, "frontend_info.20250101.log", 365*24*time.Hour)

	CleanupOldLogs(NewNop(), 0, RetentionTarget{Dir: dir, Pattern: "frontend_info.*"})

	if _, err := os.Stat(old); err != nil {
		t.Fatalf("retention 0 must not prune: %v", err)
	}
}

func TestRetentionTargetsExcludeCurrentFiles(t *testing.T) {
	dir := t.TempDir()
	streams, err := OpenStreams(dir, Options{Level: "info", Format: "console"})
	if err != nil {
		t.Fatalf("OpenStreams returned error: %v", err)
	}
	defer streams.Close()

	targets := streams.RetentionTargets()
	if len(targets) != 2 {
		t.Fatalf("expected targets for both streams, got %d", len(targets))
	}
	for _, target := range targets {
		if target.Dir != dir {
			t.Fatalf("target dir = %q, want %q", target.Dir, dir)
		}
		if len(target.Exclude) != 1 {
			t.Fatalf("each target must exclude its current file: %+v", target)
		}
	}
}
