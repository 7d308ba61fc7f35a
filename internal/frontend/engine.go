package frontend

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"glidefront/internal/jobqueue"
	"glidefront/internal/logging"
	"glidefront/internal/pool"
)

// PoolClient is the discovery/advertisement collaborator the engine
// publishes demand through.
type PoolClient interface {
	Discover(ctx context.Context) ([]pool.Glidein, error)
	Advertise(ctx context.Context, request pool.Request) error
	RetractAll(ctx context.Context) error
}

// QueueClient snapshots the idle and running job sets. The two snapshots
// are independent queries with no mutual consistency guarantee.
type QueueClient interface {
	SnapshotIdle(ctx context.Context) (jobqueue.Snapshot, error)
	SnapshotRunning(ctx context.Context) (jobqueue.Snapshot, error)
}

// MatchCounter produces per-glidein counts of matching job records.
type MatchCounter interface {
	Count(snap jobqueue.Snapshot, glideins []pool.Glidein) map[string]int
}

// Engine performs one matching, sizing, and publish pass. It keeps no state
// between passes; the pool collector is the source of truth for what is
// currently advertised.
type Engine struct {
	pool    PoolClient
	queue   QueueClient
	counter MatchCounter

	maxIdle     int
	reserveIdle int
	params      map[string]string
}

// NewEngine wires an iteration engine. maxIdle bounds demand growth per
// glidein; reserveIdle is the safety margin added while supply boots.
func NewEngine(poolClient PoolClient, queueClient QueueClient, counter MatchCounter, maxIdle, reserveIdle int, params map[string]string) *Engine {
	return &Engine{
		pool:        poolClient,
		queue:       queueClient,
		counter:     counter,
		maxIdle:     maxIdle,
		reserveIdle: reserveIdle,
		params:      params,
	}
}

// RunOnce executes a single pass: discover supply, snapshot the queues,
// count matches, and publish one demand request per glidein that appears in
// the idle match map. A failed publish is logged and does not stop the
// remaining entries.
func (e *Engine) RunOnce(ctx context.Context, logger *slog.Logger) error {
	glideins, err := e.pool.Discover(ctx)
	if err != nil {
		return fmt.Errorf("discover glideins: %w", err)
	}
	idleSnap, err := e.queue.SnapshotIdle(ctx)
	if err != nil {
		return fmt.Errorf("snapshot idle jobs: %w", err)
	}
	runningSnap, err := e.queue.SnapshotRunning(ctx)
	if err != nil {
		return fmt.Errorf("snapshot running jobs: %w", err)
	}

	logger.Info("Match",
		logging.Int("glideins", len(glideins)),
		logging.Int("idle_jobs", idleSnap.Total()),
		logging.Int("running_jobs", runningSnap.Total()),
	)
	idleCounts := e.counter.Count(idleSnap, glideins)
	runningCounts := e.counter.Count(runningSnap, glideins)

	// Only glideins present in the idle match map get a demand entry; a
	// running-only match carries no replenishment signal.
	names := make([]string, 0, len(idleCounts))
	for name := range idleCounts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		idle := idleCounts[name]
		running := runningCounts[name]
		reqIdle := e.demandSize(idle)

		logger.Info("Advertise",
			logging.String(logging.FieldGlidein, name),
			logging.Int("req_idle", reqIdle),
			logging.Int("idle", idle),
			logging.Int("running", running),
		)
		request := pool.Request{
			Name:    name,
			Glidein: name,
			ReqIdle: reqIdle,
			Params:  e.params,
			Monitors: pool.Monitors{
				Idle:    idle,
				Running: running,
			},
		}
		if err := e.pool.Advertise(ctx, request); err != nil {
			logger.Warn("advertise failed",
				logging.String(logging.FieldGlidein, name),
				logging.Int("req_idle", reqIdle),
				logging.Error(err),
			)
		}
	}
	return nil
}

// demandSize computes the requested idle pilot count for an observed idle
// job count. Zero idle jobs yields an explicit zero request so the factory
// learns demand went away.
func (e *Engine) demandSize(idle int) int {
	if idle <= 0 {
		return 0
	}
	if size := idle + e.reserveIdle; size < e.maxIdle {
		return size
	}
	return e.maxIdle
}
