// Package checks provides the setup checks run by `elevenlabs-mcp check`.
// Each check is independent and reports per-item results plus remediation
// hints; a failing check never stops the run.
package checks

import (
	"context"
	"errors"
	"fmt"
)

// Item is one ✓/✗ line inside a check.
type Item struct {
	OK   bool   `json:"ok"`
	Text string `json:"text"`
}

// CheckResult holds the outcome of a single check.
type CheckResult struct {
	// Name is a stable check identifier used in output and downstream processing.
	Name string `json:"name"`
	// Title is the heading shown while the check runs.
	Title string `json:"title"`
	// Passed indicates whether the check met its acceptance criteria.
	Passed bool `json:"passed"`
	// Summary is a human-readable one-line result intended for concise display.
	Summary string `json:"summary"`
	// Items are the per-element results, in the order they were checked.
	Items []Item `json:"items,omitempty"`
	// Hints are remediation lines printed after a failure.
	Hints []string `json:"hints,omitempty"`
	// Data carries an optional checker-specific payload for structured consumers.
	Data any `json:"data,omitempty"`
}

func (r *CheckResult) ok(format string, args ...any) {
	r.Items = append(r.Items, Item{OK: true, Text: fmt.Sprintf(format, args...)})
}

func (r *CheckResult) fail(format string, args ...any) {
	r.Items = append(r.Items, Item{OK: false, Text: fmt.Sprintf(format, args...)})
}

func (r *CheckResult) failedItems() int {
	n := 0
	for _, it := range r.Items {
		if !it.OK {
			n++
		}
	}
	return n
}

// Checker runs a single setup check.
type Checker interface {
	Name() string
	Title() string
	Check(ctx context.Context) (*CheckResult, error)
}

// RunChecks executes each checker in order. A checker that returns an error
// or panics is recorded as a failed result, so len(results) always equals
// len(checkers). The returned error joins every checker error.
func RunChecks(ctx context.Context, checkers []Checker) ([]*CheckResult, error) {
	var (
		errs    []error
		results = make([]*CheckResult, 0, len(checkers))
	)
	for _, c := range checkers {
		r, err := runOne(ctx, c)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
			r = &CheckResult{
				Name:    c.Name(),
				Title:   c.Title(),
				Summary: err.Error(),
				Items:   []Item{{OK: false, Text: err.Error()}},
			}
		}
		results = append(results, r)
	}
	return results, errors.Join(errs...)
}

func runOne(ctx context.Context, c Checker) (r *CheckResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()
	r, err = c.Check(ctx)
	if err == nil && r == nil {
		err = errors.New("checker returned no result")
	}
	return r, err
}

// Tally counts passed results.
type Tally struct {
	Passed int `json:"passed"`
	Total  int `json:"total"`
}

// Failed returns the number of failed checks.
func (t Tally) Failed() int { return t.Total - t.Passed }

// AllPassed reports whether every check passed.
func (t Tally) AllPassed() bool { return t.Passed == t.Total }

// Summarize tallies results.
func Summarize(results []*CheckResult) Tally {
	t := Tally{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			t.Passed++
		}
	}
	return t
}
