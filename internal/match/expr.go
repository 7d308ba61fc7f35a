package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"glidefront/internal/jobqueue"
	"glidefront/internal/pool"
)

// Comparison operators accepted in predicate clauses.
const (
	OpEq   = "eq"
	OpNe   = "ne"
	OpLt   = "lt"
	OpLe   = "le"
	OpGt   = "gt"
	OpGe   = "ge"
	OpGlob = "glob"
)

// Clause compares one job attribute against a literal value or, when
// GlideinAttr is set, against an attribute of the candidate glidein.
type Clause struct {
	JobAttr     string `toml:"job_attr"`
	Op          string `toml:"op"`
	Value       string `toml:"value,omitempty"`
	GlideinAttr string `toml:"glidein_attr,omitempty"`
}

// Expression is a compiled predicate: the conjunction of its clauses.
type Expression struct {
	clauses []compiledClause
}

type compiledClause struct {
	jobAttr     string
	op          string
	literal     string
	glideinAttr string
	pattern     glob.Glob
}

// Compile validates and compiles a predicate. Glob patterns with literal
// right-hand sides are compiled once here; glidein-sourced patterns are
// compiled per evaluation.
func Compile(clauses []Clause) (*Expression, error) {
	expr := &Expression{clauses: make([]compiledClause, 0, len(clauses))}
	for i, clause := range clauses {
		jobAttr := strings.TrimSpace(clause.JobAttr)
		if jobAttr == "" {
			return nil, fmt.Errorf("clause %d: job_attr is required", i+1)
		}
		op := strings.ToLower(strings.TrimSpace(clause.Op))
		switch op {
		case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe, OpGlob:
		default:
			return nil, fmt.Errorf("clause %d: unsupported op %q", i+1, clause.Op)
		}
		literal := clause.Value
		glideinAttr := strings.TrimSpace(clause.GlideinAttr)
		if glideinAttr == "" && literal == "" {
			return nil, fmt.Errorf("clause %d: value or glidein_attr is required", i+1)
		}
		if glideinAttr != "" && literal != "" {
			return nil, fmt.Errorf("clause %d: value and glidein_attr are mutually exclusive", i+1)
		}

		compiled := compiledClause{
			jobAttr:     jobAttr,
			op:          op,
			literal:     literal,
			glideinAttr: glideinAttr,
		}
		if op == OpGlob && glideinAttr == "" {
			pattern, err := glob.Compile(literal)
			if err != nil {
				return nil, fmt.Errorf("clause %d: compile glob %q: %w", i+1, literal, err)
			}
			compiled.pattern = pattern
		}
		expr.clauses = append(expr.clauses, compiled)
	}
	return expr, nil
}

// CompileConstraint compiles a job-only predicate. Clauses referencing
// glidein attributes are rejected since no glidein is in scope when the
// queue snapshot is filtered.
func CompileConstraint(clauses []Clause) (*Expression, error) {
	for i, clause := range clauses {
		if strings.TrimSpace(clause.GlideinAttr) != "" {
			return nil, fmt.Errorf("clause %d: job constraint cannot reference glidein_attr", i+1)
		}
	}
	return Compile(clauses)
}

// Matches reports whether the job satisfies every clause against the glidein.
func (e *Expression) Matches(job jobqueue.Job, glidein pool.Glidein) bool {
	if e == nil {
		return true
	}
	for _, clause := range e.clauses {
		if !clause.eval(job, glidein) {
			return false
		}
	}
	return true
}

// MatchesJob evaluates a job-only predicate, e.g. the queue constraint.
func (e *Expression) MatchesJob(job jobqueue.Job) bool {
	return e.Matches(job, pool.Glidein{})
}

// Filter adapts the expression into the queue client's filter type.
func (e *Expression) Filter() jobqueue.Filter {
	if e == nil {
		return nil
	}
	return e.MatchesJob
}

func (c compiledClause) eval(job jobqueue.Job, glidein pool.Glidein) bool {
	left, ok := jobValue(job, c.jobAttr)
	if !ok {
		return false
	}
	right := c.literal
	if c.glideinAttr != "" {
		right, ok = glidein.Attrs[c.glideinAttr]
		if !ok {
			return false
		}
	}

	switch c.op {
	case OpEq:
		return left == right
	case OpNe:
		return left != right
	case OpGlob:
		pattern := c.pattern
		if pattern == nil {
			compiled, err := glob.Compile(right)
			if err != nil {
				return false
			}
			pattern = compiled
		}
		return pattern.Match(left)
	default:
		return compareNumeric(left, right, c.op)
	}
}

// jobValue resolves a clause attribute name against the job record. The
// fixed columns are addressable alongside the free-form attribute map.
func jobValue(job jobqueue.Job, attr string) (string, bool) {
	switch attr {
	case "owner":
		return job.Owner, true
	case "state":
		return job.State, true
	case "id":
		return strconv.FormatInt(job.ID, 10), true
	}
	value, ok := job.Attrs[attr]
	return value, ok
}

func compareNumeric(left, right, op string) bool {
	lv, err := strconv.ParseFloat(strings.TrimSpace(left), 64)
	if err != nil {
		return false
	}
	rv, err := strconv.ParseFloat(strings.TrimSpace(right), 64)
	if err != nil {
		return false
	}
	switch op {
	case OpLt:
		return lv < rv
	case OpLe:
		return lv <= rv
	case OpGt:
		return lv > rv
	case OpGe:
		return lv >= rv
	}
	return false
}
