package testsupport

import (
	"context"
	"testing"

	"glidefront/internal/jobqueue"
)

// SeedQueue creates a queue source database at path containing the provided
// jobs and returns the path.
func SeedQueue(t testing.TB, path string, jobs ...jobqueue.Job) string {
	t.Helper()
	if err := jobqueue.CreateQueue(context.Background(), path, jobs...); err != nil {
		t.Fatalf("seed queue %s: %v", path, err)
	}
	return path
}

// IdleJob builds an idle job record with the given attributes.
func IdleJob(id int64, owner string, attrs map[string]string) jobqueue.Job {
	return jobqueue.Job{ID: id, Owner: owner, State: jobqueue.StateIdle, Attrs: attrs}
}

// RunningJob builds a running job record with the given attributes.
func RunningJob(id int64, owner string, attrs map[string]string) jobqueue.Job {
	return jobqueue.Job{ID: id, Owner: owner, State: jobqueue.StateRunning, Attrs: attrs}
}
