package frontend

import (
	"glidefront/internal/logging"
	"glidefront/internal/singleton"
)

// SetStartupHooks overrides the guard and stream constructors for tests.
func (m *Manager) SetStartupHooks(
	acquire func(path string) (*singleton.Guard, error),
	open func(dir string, opts logging.Options) (*logging.Streams, error),
) {
	if acquire != nil {
		m.acquireGuard = acquire
	}
	if open != nil {
		m.openStreams = open
	}
}

// LockPath exposes the configured singleton lock location.
func (m *Manager) LockPath() string {
	return m.cfg.LockPath()
}
