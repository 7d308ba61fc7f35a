package jobqueue

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS jobs (
	id    INTEGER PRIMARY KEY,
	owner TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL,
	attrs TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_jobs_state ON jobs(state);
`

// CreateQueue initializes a queue database at path and inserts the provided
// jobs. The schedd owns queue databases in production; this writer exists for
// tests and local tooling.
func CreateQueue(ctx context.Context, path string, jobs ...Job) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open queue database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create queue schema: %w", err)
	}
	for _, job := range jobs {
		attrs := job.Attrs
		if attrs == nil {
			attrs = map[string]string{}
		}
		encoded, err := json.Marshal(attrs)
		if err != nil {
			return fmt.Errorf("encode attrs for job %d: %w", job.ID, err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT OR REPLACE INTO jobs (id, owner, state, attrs) VALUES (?, ?, ?, ?)",
			job.ID, job.Owner, job.State, string(encoded)); err != nil {
			return fmt.Errorf("insert job %d: %w", job.ID, err)
		}
	}
	return nil
}
