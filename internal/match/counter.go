package match

import (
	"glidefront/internal/jobqueue"
	"glidefront/internal/pool"
)

// Counter counts, per glidein, how many snapshot jobs satisfy the match
// predicate. Every discovered glidein gets an entry, zero counts included,
// so a zero can later be advertised as an explicit demand withdrawal.
type Counter struct {
	expr *Expression
}

// NewCounter wraps a compiled match predicate.
func NewCounter(expr *Expression) *Counter {
	return &Counter{expr: expr}
}

// Count evaluates the predicate for every job/glidein pair in the snapshot.
// The result is keyed by glidein name.
func (c *Counter) Count(snap jobqueue.Snapshot, glideins []pool.Glidein) map[string]int {
	counts := make(map[string]int, len(glideins))
	for _, glidein := range glideins {
		if glidein.Name == "" {
			continue
		}
		if _, seen := counts[glidein.Name]; seen {
			continue
		}
		counts[glidein.Name] = 0
		for _, jobs := range snap {
			for _, job := range jobs {
				if c.expr.Matches(job, glidein) {
					counts[glidein.Name]++
				}
			}
		}
	}
	return counts
}
