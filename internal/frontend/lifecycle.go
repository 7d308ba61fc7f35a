package frontend

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"glidefront/internal/config"
	"glidefront/internal/logging"
	"glidefront/internal/preflight"
	"glidefront/internal/singleton"
)

// Manager owns the daemon lifecycle: singleton guard, log streams, the
// polling loop around the iteration engine, and teardown.
type Manager struct {
	cfg           *config.Config
	engine        *Engine
	pool          PoolClient
	pollPeriod    time.Duration
	advertiseRate int

	// Overridable in tests; defaults wire the real collaborators.
	acquireGuard func(path string) (*singleton.Guard, error)
	openStreams  func(dir string, opts logging.Options) (*logging.Streams, error)
}

// NewManager assembles the lifecycle around an engine and its pool client.
// advertiseRate is accepted for interface compatibility and recorded at
// startup; the sizing logic does not consume it.
func NewManager(cfg *config.Config, engine *Engine, poolClient PoolClient, pollPeriod time.Duration, advertiseRate int) *Manager {
	return &Manager{
		cfg:           cfg,
		engine:        engine,
		pool:          poolClient,
		pollPeriod:    pollPeriod,
		advertiseRate: advertiseRate,
		acquireGuard:  singleton.Acquire,
		openStreams:   logging.OpenStreams,
	}
}

// Run drives the frontend until ctx is cancelled by a shutdown signal or a
// first-pass error turns fatal. The returned error is nil on graceful
// shutdown. Teardown (retract-all, guard release) runs on every path.
func (m *Manager) Run(ctx context.Context) error {
	// The guard comes first: if another frontend is live, fail before any
	// log file is opened or mutated.
	guard, err := m.acquireGuard(m.cfg.LockPath())
	if err != nil {
		return Wrap(ErrStartup, "acquire singleton guard", err)
	}

	streams, err := m.openStreams(m.cfg.Paths.LogDir, logging.Options{
		Level:  m.cfg.Logging.Level,
		Format: m.cfg.Logging.Format,
	})
	if err != nil {
		_ = guard.Release()
		return Wrap(ErrStartup, "open log streams", err)
	}
	defer streams.Close()

	logger := streams.Logger.With(
		logging.String(logging.FieldSession, uuid.NewString()),
	)
	logging.CleanupOldLogs(logger, m.cfg.Logging.RetentionDays, streams.RetentionTargets()...)

	logger.Info("Starting up",
		logging.String("frontend", m.cfg.Frontend.Name),
		logging.String("factory_pool", m.cfg.Frontend.FactoryPool),
		logging.Duration("poll_period", m.pollPeriod),
		logging.Int("advertise_rate", m.advertiseRate),
		logging.String("lock", guard.Path()),
	)
	preflight.Snapshot(logger, preflight.RunAll(ctx, m.cfg, m.pool))

	fatal := m.runLoop(ctx, logger)

	// STOPPING: retract exactly once, on every shutdown path. A failure
	// here is warned and swallowed; teardown must not fail the shutdown.
	logger.Info("retracting advertised requests")
	if err := m.pool.RetractAll(context.Background()); err != nil {
		logger.Warn("retract-all failed", logging.Error(err))
	}

	// STOPPED: explicit release on the normal path. Abnormal exits drop
	// the advisory lock at process termination anyway.
	if err := guard.Release(); err != nil {
		logger.Warn("release singleton guard failed", logging.Error(err))
	}
	return fatal
}

// runLoop executes iterations until shutdown. It returns the fatal error to
// re-raise after teardown, or nil for a graceful stop.
func (m *Manager) runLoop(ctx context.Context, logger *slog.Logger) error {
	iteration := 0
	for {
		select {
		case <-ctx.Done():
			logger.Info("received signal, exiting")
			return nil
		default:
		}

		iteration++
		logger.Info("iteration start", logging.Int(logging.FieldIteration, iteration))

		// Passes run to completion: the engine gets a context detached
		// from the signal context, and shutdown is observed only between
		// passes and during the sleep.
		if err := m.engine.RunOnce(context.Background(), logger); err != nil {
			if iteration == 1 {
				logger.Error("first iteration failed", logging.Error(err))
				return Wrap(ErrFirstPass, "iteration", err)
			}
			logger.Warn("iteration failed, continuing",
				logging.Int(logging.FieldIteration, iteration),
				logging.Error(err),
			)
		}

		logger.Info("Sleep")
		select {
		case <-ctx.Done():
			logger.Info("received signal, exiting")
			return nil
		case <-time.After(m.pollPeriod):
		}
	}
}
