package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ricirt/service-template/internal/domain"
)

// Checker probes one dependency the service needs to serve traffic.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckFunc adapts a function into a Checker.
type CheckFunc struct {
	CheckName string
	Fn        func(ctx context.Context) error
}

func (c CheckFunc) Name() string                    { return c.CheckName }
func (c CheckFunc) Check(ctx context.Context) error { return c.Fn(ctx) }

// Registry runs a fixed set of readiness checks.
// It is built once at startup and safe for concurrent use afterwards.
type Registry struct {
	checkers []Checker
	timeout  time.Duration
}

// NewRegistry returns a Registry that bounds each check by timeout.
// A non-positive timeout leaves checks bounded only by the caller's context.
func NewRegistry(timeout time.Duration, checkers ...Checker) *Registry {
	return &Registry{checkers: checkers, timeout: timeout}
}

// Run executes every check concurrently and reports the aggregate.
// A failing check never cancels the others.
func (r *Registry) Run(ctx context.Context) domain.ReadinessReport {
	results := make([]error, len(r.checkers))

	var g errgroup.Group
	for i, c := range r.checkers {
		g.Go(func() error {
			checkCtx := ctx
			if r.timeout > 0 {
				var cancel context.CancelFunc
				checkCtx, cancel = context.WithTimeout(ctx, r.timeout)
				defer cancel()
			}
			results[i] = c.Check(checkCtx)
			return nil
		})
	}
	_ = g.Wait()

	report := domain.ReadinessReport{
		Status: domain.StatusOK,
		Checks: make(map[string]string, len(r.checkers)),
	}
	for i, c := range r.checkers {
		if err := results[i]; err != nil {
			report.Status = domain.StatusUnavailable
			report.Checks[c.Name()] = err.Error()
			continue
		}
		report.Checks[c.Name()] = domain.StatusOK
	}
	return report
}
