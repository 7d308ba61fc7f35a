// Package singleton enforces single-instance execution of the frontend via
// an advisory lock file. The lock is acquired before any log file is opened
// so a losing process leaves no trace on disk.
package singleton

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning indicates another frontend holds the lock.
var ErrAlreadyRunning = errors.New("another frontend instance is already running")

// Guard holds the exclusive process lock for the process lifetime. The OS
// releases the advisory lock on any kind of process termination; Release
// exists for the explicit close on the normal shutdown path.
type Guard struct {
	path string
	lock *flock.Flock
}

// Acquire takes a non-blocking exclusive lock on path. On success the file
// content is overwritten with the holder's PID and start time; the content
// is informational only, the flock is what enforces exclusion.
func Acquire(path string) (*Guard, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}

	record := fmt.Sprintf("PID: %d\nStarted: %s\n", os.Getpid(), time.Now().Format(time.UnixDate))
	if err := writeRecord(path, record); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return &Guard{path: path, lock: lock}, nil
}

// Path returns the lock file location.
func (g *Guard) Path() string {
	return g.path
}

// Release writes nothing; it closes the underlying handle, dropping the
// lock. Safe to call once on the normal shutdown path.
func (g *Guard) Release() error {
	if g == nil || g.lock == nil {
		return nil
	}
	err := g.lock.Unlock()
	g.lock = nil
	return err
}

func writeRecord(path, record string) error {
	// Truncate in place rather than rename: replacing the inode would drop
	// the advisory lock held on it.
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file for record: %w", err)
	}
	defer file.Close()
	if _, err := file.WriteString(record); err != nil {
		return fmt.Errorf("write lock record: %w", err)
	}
	return nil
}
