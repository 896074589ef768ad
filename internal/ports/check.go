package ports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentChecks bounds the goroutines started by CheckAll.
const maxConcurrentChecks = 8

// ErrDuplicateChecker is returned when attempting to register a checker
// with a name that is already registered.
var ErrDuplicateChecker = errors.New("duplicate checker")

// Checker is implemented by anything that can verify part of the view link setup,
// e.g. that a stage host composes into a valid absolute URL.
//
// Example implementation:
//
//	type stageChecker struct{ stage, host string }
//
//	func (c stageChecker) Name() string { return c.stage }
//
//	func (c stageChecker) Check(ctx context.Context) error {
//	    _, err := url.Parse(c.host)
//	    return err
//	}
type Checker interface {
	// Name returns a unique identifier for this check.
	Name() string

	// Check returns an error if the checked component is misconfigured.
	Check(ctx context.Context) error
}

// CheckStatus represents the outcome of a check.
type CheckStatus string

const (
	// CheckStatusOK indicates all checks passed.
	CheckStatusOK CheckStatus = "ok"

	// CheckStatusFailed indicates at least one check failed.
	CheckStatusFailed CheckStatus = "failed"
)

// CheckReport contains the aggregated check results.
type CheckReport struct {
	// Status is the overall status.
	Status CheckStatus `json:"status"`

	// Checks contains individual results keyed by checker name.
	Checks map[string]*CheckResult `json:"checks"`

	// Timestamp is when the checks were performed.
	Timestamp time.Time `json:"timestamp"`
}

// Names returns the checker names in ascending order.
func (r *CheckReport) Names() []string {
	names := make([]string, 0, len(r.Checks))
	for name := range r.Checks {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// CheckResult contains the result of a single check.
type CheckResult struct {
	Status   CheckStatus   `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// CheckRegistry is a thread-safe set of checkers.
type CheckRegistry struct {
	mu       sync.RWMutex
	checkers []Checker
}

// NewCheckRegistry creates an empty registry.
func NewCheckRegistry() *CheckRegistry {
	return &CheckRegistry{
		checkers: make([]Checker, 0),
	}
}

// Register adds a checker to the registry.
// Returns an error if a checker with the same name is already registered.
func (r *CheckRegistry) Register(checker Checker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	for _, c := range r.checkers {
		if c.Name() == name {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
		}
	}

	r.checkers = append(r.checkers, checker)

	return nil
}

// CheckAll runs all registered checks concurrently and reports every result.
func (r *CheckRegistry) CheckAll(ctx context.Context) *CheckReport {
	r.mu.RLock()
	checkers := make([]Checker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	report := &CheckReport{
		Status:    CheckStatusOK,
		Checks:    make(map[string]*CheckResult),
		Timestamp: time.Now(),
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)

	g.SetLimit(maxConcurrentChecks)

	for _, c := range checkers {
		g.Go(func() error {
			start := time.Now()
			err := c.Check(ctx)

			result := &CheckResult{
				Status:   CheckStatusOK,
				Duration: time.Since(start),
			}

			if err != nil {
				result.Status = CheckStatusFailed
				result.Message = err.Error()
			}

			mu.Lock()

			report.Checks[c.Name()] = result
			if result.Status == CheckStatusFailed {
				report.Status = CheckStatusFailed
			}

			mu.Unlock()

			// A failed check is part of the report, not an error.
			return nil
		})
	}

	_ = g.Wait()

	return report
}
