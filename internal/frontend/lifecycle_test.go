package frontend_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"glidefront/internal/frontend"
	"glidefront/internal/jobqueue"
	"glidefront/internal/logging"
	"glidefront/internal/singleton"
	"glidefront/internal/testsupport"
)

func newManager(t *testing.T, poolClient *fakePool, queue *fakeQueue) *frontend.Manager {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	engine := frontend.NewEngine(poolClient, queue, siteCounter(t), cfg.Frontend.MaxIdle, cfg.Frontend.ReserveIdle, nil)
	return frontend.NewManager(cfg, engine, poolClient, 5*time.Millisecond, 1)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestRunFirstIterationFailureIsFatal(t *testing.T) {
	poolClient := &fakePool{}
	queue := &fakeQueue{idleErrAt: map[int]error{1: errors.New("queue source unreadable")}}
	manager := newManager(t, poolClient, queue)

	err := manager.Run(context.Background())
	if !errors.Is(err, frontend.ErrFirstPass) {
		t.Fatalf("expected first-pass error, got %v", err)
	}
	if got := poolClient.retractCount(); got != 1 {
		t.Fatalf("retract-all ran %d times on the fatal path, want exactly 1", got)
	}
}

func TestRunToleratesLaterIterationFailures(t *testing.T) {
	poolClient := &fakePool{}
	queue := &fakeQueue{
		idle:      jobqueue.Snapshot{},
		running:   jobqueue.Snapshot{},
		idleErrAt: map[int]error{2: errors.New("transient queue failure")},
	}
	manager := newManager(t, poolClient, queue)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- manager.Run(ctx) }()

	// Iteration 2 fails; the loop must still reach iteration 3.
	waitFor(t, "third iteration", func() bool { return queue.idleCallCount() >= 3 })
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("Run returned error after graceful cancel: %v", err)
	}
	if got := poolClient.retractCount(); got != 1 {
		t.Fatalf("retract-all ran %d times, want exactly 1", got)
	}
}

func TestRunRetractsOnGracefulShutdown(t *testing.T) {
	poolClient := &fakePool{}
	queue := &fakeQueue{idle: jobqueue.Snapshot{}, running: jobqueue.Snapshot{}}
	manager := newManager(t, poolClient, queue)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- manager.Run(ctx) }()

	waitFor(t, "first iteration", func() bool { return queue.idleCallCount() >= 1 })
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("Run returned error on graceful shutdown: %v", err)
	}
	if got := poolClient.retractCount(); got != 1 {
		t.Fatalf("retract-all ran %d times, want exactly 1", got)
	}
}

func TestRunFailsWhenLockIsHeld(t *testing.T) {
	poolClient := &fakePool{}
	queue := &fakeQueue{idle: jobqueue.Snapshot{}, running: jobqueue.Snapshot{}}
	manager := newManager(t, poolClient, queue)

	guard, err := singleton.Acquire(manager.LockPath())
	if err != nil {
		t.Fatalf("pre-acquire lock: %v", err)
	}
	defer guard.Release()

	err = manager.Run(context.Background())
	if !errors.Is(err, frontend.ErrStartup) {
		t.Fatalf("expected startup error, got %v", err)
	}
	if !errors.Is(err, singleton.ErrAlreadyRunning) {
		t.Fatalf("expected already-running cause, got %v", err)
	}
	if got := poolClient.retractCount(); got != 0 {
		t.Fatalf("retract-all must not run when startup fails, ran %d times", got)
	}
}

func TestRunAcquiresGuardBeforeOpeningStreams(t *testing.T) {
	poolClient := &fakePool{}
	queue := &fakeQueue{idle: jobqueue.Snapshot{}, running: jobqueue.Snapshot{}}
	manager := newManager(t, poolClient, queue)

	streamsOpened := false
	manager.SetStartupHooks(
		func(path string) (*singleton.Guard, error) {
			return nil, singleton.ErrAlreadyRunning
		},
		func(dir string, opts logging.Options) (*logging.Streams, error) {
			streamsOpened = true
			return logging.OpenStreams(dir, opts)
		},
	)

	err := manager.Run(context.Background())
	if !errors.Is(err, frontend.ErrStartup) {
		t.Fatalf("expected startup error, got %v", err)
	}
	if streamsOpened {
		t.Fatal("log streams must not open before the singleton guard is held")
	}
}
