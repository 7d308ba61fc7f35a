package jobqueue

// Job states as stored by the schedd.
const (
	StateIdle    = "idle"
	StateRunning = "running"
)

// Job is one queued work item as observed at snapshot time.
type Job struct {
	ID    int64
	Owner string
	State string
	Attrs map[string]string
}

// Snapshot maps a queue source name to the jobs observed there.
type Snapshot map[string][]Job

// Total returns the number of jobs across all sources.
func (s Snapshot) Total() int {
	total := 0
	for _, jobs := range s {
		total += len(jobs)
	}
	return total
}

// Filter decides whether a job record is eligible for matching at all.
// Jobs rejected by the filter never reach the match predicate.
type Filter func(Job) bool
