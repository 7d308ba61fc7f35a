// Package preflight verifies the frontend's collaborators are reachable
// before or while the daemon runs: log directory writable, factory pool
// responding, queue source databases readable.
package preflight

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"glidefront/internal/config"
	"glidefront/internal/jobqueue"
	"glidefront/internal/logging"
	"glidefront/internal/pool"
)

// Result is the outcome of one check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Discoverer is the slice of the pool client the pool check needs.
type Discoverer interface {
	Discover(ctx context.Context) ([]pool.Glidein, error)
}

// CheckLogDir verifies the log directory exists and is writable.
func CheckLogDir(path string) Result {
	const name = "log directory"
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("stat failed (%v)", err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", path)}
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not writable (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckFactoryPool verifies the collector answers a discovery query.
func CheckFactoryPool(ctx context.Context, discoverer Discoverer) Result {
	const name = "factory pool"
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	glideins, err := discoverer.Discover(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("discover failed (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d glideins advertised", len(glideins))}
}

// CheckQueueSource verifies one schedd queue database is present and readable.
func CheckQueueSource(schedd config.Schedd) Result {
	name := fmt.Sprintf("queue source %s", schedd.Name)
	info, err := os.Stat(schedd.Path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("stat failed (%v)", err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is a directory", schedd.Path)}
	}
	if err := unix.Access(schedd.Path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not readable (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: schedd.Path}
}

// RunAll executes every check against the configuration.
func RunAll(ctx context.Context, cfg *config.Config, discoverer Discoverer) []Result {
	results := []Result{
		CheckLogDir(cfg.Paths.LogDir),
		CheckFactoryPool(ctx, discoverer),
	}
	for _, schedd := range cfg.Schedds {
		results = append(results, CheckQueueSource(schedd))
	}
	return results
}

// Snapshot logs the check outcomes as a startup dependency snapshot.
func Snapshot(logger *slog.Logger, results []Result) {
	for _, result := range results {
		if result.Passed {
			logger.Info("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail),
			)
			continue
		}
		logger.Warn("preflight check failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
		)
	}
}

// QuerySources opens each queue source briefly to prove it parses as a
// queue database. Used by the operator CLI, not the daemon loop.
func QuerySources(ctx context.Context, cfg *config.Config) []Result {
	results := make([]Result, 0, len(cfg.Schedds))
	for _, schedd := range cfg.Schedds {
		name := fmt.Sprintf("queue schema %s", schedd.Name)
		client, err := jobqueue.Open([]jobqueue.Source{{Name: schedd.Name, Path: schedd.Path}}, nil)
		if err != nil {
			results = append(results, Result{Name: name, Detail: err.Error()})
			continue
		}
		_, err = client.SnapshotIdle(ctx)
		_ = client.Close()
		if err != nil {
			results = append(results, Result{Name: name, Detail: err.Error()})
			continue
		}
		results = append(results, Result{Name: name, Passed: true, Detail: schedd.Path})
	}
	return results
}
