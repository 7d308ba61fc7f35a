package main

import (
	"strings"
	"testing"
)

func execute(args ...string) error {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRejectsWrongArgCount(t *testing.T) {
	if err := execute("30", "5"); err == nil {
		t.Fatal("expected error for missing config argument")
	}
	if err := execute(); err == nil {
		t.Fatal("expected error when invoked without arguments")
	}
}

func TestRejectsNonPositivePollPeriod(t *testing.T) {
	for _, poll := range []string{"0", "-30", "abc"} {
		err := execute(poll, "5", "/etc/glidefront/config.toml")
		if err == nil || !strings.Contains(err.Error(), "poll_period_seconds") {
			t.Fatalf("poll %q: expected poll period error, got %v", poll, err)
		}
	}
}

func TestRejectsNonIntegerAdvertiseRate(t *testing.T) {
	err := execute("30", "fast", "/etc/glidefront/config.toml")
	if err == nil || !strings.Contains(err.Error(), "advertise_rate") {
		t.Fatalf("expected advertise rate error, got %v", err)
	}
}

func TestValidArgsReachConfigLoad(t *testing.T) {
	// Arguments parse; the run then fails on the missing config file.
	err := execute("30", "5", "/nonexistent/config.toml")
	if err == nil || !strings.Contains(err.Error(), "config") {
		t.Fatalf("expected config load failure, got %v", err)
	}
}
