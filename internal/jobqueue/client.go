package jobqueue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Source identifies one schedd queue database.
type Source struct {
	Name string
	Path string
}

// Client snapshots idle and running jobs across a fixed set of queue sources.
type Client struct {
	sources []openSource
	filter  Filter
}

type openSource struct {
	name string
	db   *sql.DB
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open connects to every queue source. The filter may be nil, in which case
// every job record is eligible.
func Open(sources []Source, filter Filter) (*Client, error) {
	if len(sources) == 0 {
		return nil, errors.New("at least one queue source is required")
	}
	client := &Client{filter: filter}
	for _, src := range sources {
		name := strings.TrimSpace(src.Name)
		path := strings.TrimSpace(src.Path)
		if name == "" || path == "" {
			client.Close()
			return nil, fmt.Errorf("queue source requires name and path (got %q, %q)", src.Name, src.Path)
		}
		db, err := sql.Open("sqlite", path+"?mode=ro&_time_format=sqlite")
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("open queue source %s: %w", name, err)
		}
		db.SetMaxOpenConns(1)
		client.sources = append(client.sources, openSource{name: name, db: db})
	}
	return client, nil
}

// Close releases all queue source connections.
func (c *Client) Close() error {
	var firstErr error
	for _, src := range c.sources {
		if err := src.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.sources = nil
	return firstErr
}

// SnapshotIdle returns the idle job set per source at query time.
func (c *Client) SnapshotIdle(ctx context.Context) (Snapshot, error) {
	return c.snapshot(ctx, StateIdle)
}

// SnapshotRunning returns the running job set per source at query time.
func (c *Client) SnapshotRunning(ctx context.Context) (Snapshot, error) {
	return c.snapshot(ctx, StateRunning)
}

func (c *Client) snapshot(ctx context.Context, state string) (Snapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	snap := make(Snapshot, len(c.sources))
	for _, src := range c.sources {
		jobs, err := c.querySource(ctx, src, state)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s jobs from %s: %w", state, src.name, err)
		}
		snap[src.name] = jobs
	}
	return snap, nil
}

func (c *Client) querySource(ctx context.Context, src openSource, state string) ([]Job, error) {
	var rows *sql.Rows
	err := retryOnBusy(ctx, func() error {
		var queryErr error
		rows, queryErr = src.db.QueryContext(ctx,
			"SELECT id, owner, state, attrs FROM jobs WHERE state = ? ORDER BY id", state)
		return queryErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var (
			job      Job
			rawAttrs sql.NullString
		)
		if err := rows.Scan(&job.ID, &job.Owner, &job.State, &rawAttrs); err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		if rawAttrs.Valid && rawAttrs.String != "" {
			if err := json.Unmarshal([]byte(rawAttrs.String), &job.Attrs); err != nil {
				return nil, fmt.Errorf("decode attrs for job %d: %w", job.ID, err)
			}
		}
		if c.filter != nil && !c.filter(job) {
			continue
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
