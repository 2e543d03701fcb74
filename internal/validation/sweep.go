package validation

import (
	"time"

	"github.com/google/uuid"

	"github.com/thoreinstein/confcheck/internal/configuration"
)

// Entry is the result for one (context, type) pair of a sweep.
type Entry struct {
	Context configuration.Context `json:"context"`
	Type    configuration.Type    `json:"type"`
	Result  *Result               `json:"result"`
}

// Sweep holds the results of validating every context against every type.
// Entries are context-major: all types of the first context come first.
type Sweep struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	Entries   []Entry       `json:"entries"`
}

// NewSweep returns a sweep with a fresh run ID and n pre-sized entries.
func NewSweep(n int) *Sweep {
	return &Sweep{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Entries:   make([]Entry, n),
	}
}

// Len returns the number of pairs in the sweep.
func (s *Sweep) Len() int {
	return len(s.Entries)
}

// HasErrors reports whether any pair failed.
func (s *Sweep) HasErrors() bool {
	for _, e := range s.Entries {
		if e.Result.HasErrors() {
			return true
		}
	}
	return false
}

// ErrorCount returns the total number of violations across all pairs.
func (s *Sweep) ErrorCount() int {
	n := 0
	for _, e := range s.Entries {
		n += e.Result.Len()
	}
	return n
}

// Failed returns the entries with at least one violation.
func (s *Sweep) Failed() []Entry {
	var out []Entry
	for _, e := range s.Entries {
		if e.Result.HasErrors() {
			out = append(out, e)
		}
	}
	return out
}

// Lookup returns the result for a pair.
func (s *Sweep) Lookup(c configuration.Context, t configuration.Type) (*Result, bool) {
	for _, e := range s.Entries {
		if e.Context == c && e.Type == t {
			return e.Result, true
		}
	}
	return nil, false
}

// Contexts returns the distinct contexts in entry order.
func (s *Sweep) Contexts() []configuration.Context {
	seen := make(map[configuration.Context]bool)
	var out []configuration.Context
	for _, e := range s.Entries {
		if !seen[e.Context] {
			seen[e.Context] = true
			out = append(out, e.Context)
		}
	}
	return out
}

// Types returns the distinct types in entry order.
func (s *Sweep) Types() []configuration.Type {
	seen := make(map[configuration.Type]bool)
	var out []configuration.Type
	for _, e := range s.Entries {
		if !seen[e.Type] {
			seen[e.Type] = true
			out = append(out, e.Type)
		}
	}
	return out
}
