package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readStream(t *testing.T, dir, prefix string) string {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("%s.%s.log", prefix, time.Now().UTC().Format(dayFormat)))
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(content)
}

func TestStreamsRouteByLevel(t *testing.T) {
	dir := t.TempDir()
	streams, err := OpenStreams(dir, Options{Level: "info", Format: "console"})
	if err != nil {
		t.Fatalf("OpenStreams returned error: %v", err)
	}
	defer streams.Close()

	streams.Logger.Info("iteration start", Int(FieldIteration, 1))
	streams.Logger.Warn("advertise failed", String(FieldGlidein, "cern-g"))

	activity := readStream(t, dir, "frontend_info")
	if !strings.Contains(activity, "iteration start") || !strings.Contains(activity, "advertise failed") {
		t.Fatalf("activity stream missing records:\n%s", activity)
	}

	warning := readStream(t, dir, "frontend_err")
	if strings.Contains(warning, "iteration start") {
		t.Fatalf("info record leaked into warning stream:\n%s", warning)
	}
	if !strings.Contains(warning, "advertise failed") {
		t.Fatalf("warning stream missing warn record:\n%s", warning)
	}
}

func TestStreamsDebugSuppressedAtInfoLevel(t *testing.T) {
	dir := t.TempDir()
	streams, err := OpenStreams(dir, Options{Level: "info", Format: "console"})
	if err != nil {
		t.Fatalf("OpenStreams returned error: %v", err)
	}
	defer streams.Close()

	streams.Logger.Debug("noise")
	streams.Logger.Info("signal")

	activity := readStream(t, dir, "frontend_info")
	if strings.Contains(activity, "noise") {
		t.Fatalf("debug record written at info level:\n%s", activity)
	}
	if !strings.Contains(activity, "signal") {
		t.Fatalf("info record missing:\n%s", activity)
	}
}

func TestStreamsConsoleLineShape(t *testing.T) {
	dir := t.TempDir()
	streams, err := OpenStreams(dir, Options{Level: "info", Format: "console"})
	if err != nil {
		t.Fatalf("OpenStreams returned error: %v", err)
	}
	defer streams.Close()

	logger := NewComponentLogger(streams.Logger, "frontend")
	logger.Info("Advertise", String(FieldGlidein, "cern-g"), Int("req_idle", 15))

	activity := strings.TrimSpace(readStream(t, dir, "frontend_info"))
	fields := strings.Fields(activity)
	if len(fields) < 4 {
		t.Fatalf("unexpected line shape: %q", activity)
	}
	if _, err := time.Parse(time.RFC3339, fields[0]); err != nil {
		t.Fatalf("line must start with an RFC3339 timestamp: %q", activity)
	}
	if fields[1] != "INFO" {
		t.Fatalf("line level = %q, want INFO: %q", fields[1], activity)
	}
	if fields[2] != "frontend:" {
		t.Fatalf("component prefix = %q, want frontend:: %q", fields[2], activity)
	}
	if !strings.Contains(activity, "glidein=cern-g") || !strings.Contains(activity, "req_idle=15") {
		t.Fatalf("attrs missing from line: %q", activity)
	}
}

func TestStreamsJSONFormat(t *testing.T) {
	dir := t.TempDir()
	streams, err := OpenStreams(dir, Options{Level: "info", Format: "json"})
	if err != nil {
		t.Fatalf("OpenStreams returned error: %v", err)
	}
	defer streams.Close()

	streams.Logger.Info("Starting up", String("frontend", "frontend-test"))

	activity := strings.TrimSpace(readStream(t, dir, "frontend_info"))
	var record map[string]any
	if err := json.Unmarshal([]byte(activity), &record); err != nil {
		t.Fatalf("activity line is not JSON: %v\n%s", err, activity)
	}
	if record["level"] != "info" {
		t.Fatalf("level = %v, want info", record["level"])
	}
	if record["msg"] != "Starting up" {
		t.Fatalf("msg = %v, want Starting up", record["msg"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("record missing ts field")
	}
}

func TestOpenStreamsRejectsUnknownFormat(t *testing.T) {
	if _, err := OpenStreams(t.TempDir(), Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
