// Package health provides periodic self-checks for a running simulation
// host. Hosts run the registered checks every few seconds and log the
// aggregated status, so a stalled loop or runaway entity growth shows up in
// the logs.
package health

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/opd-ai/go-wanderer/pkg/logging"
)

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of the host.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// Healthy reports whether every check passed.
func (s HealthStatus) Healthy() bool {
	return s.Status == "healthy"
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a new health check with the health checker.
// If a check with the same name already exists, it will be replaced.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth executes all registered health checks and returns the aggregated status.
// The overall status is "healthy" only if all individual checks pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: "healthy",
			}
		}
	}

	return status
}

// Report runs every check and logs the outcome: unhealthy checks at warn
// level, a healthy run at debug level.
func (hc *HealthChecker) Report(ctx context.Context, logger *logging.Logger) HealthStatus {
	status := hc.CheckHealth(ctx)
	if status.Healthy() {
		logger.Debug(ctx, "health check passed", "checks", len(status.Checks))
		return status
	}

	names := make([]string, 0, len(status.Checks))
	for name := range status.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if c := status.Checks[name]; c.Status != "healthy" {
			logger.Warn(ctx, "health check failed", "check", name, "message", c.Message)
		}
	}
	return status
}

// SimulationHealthCheck fails when the frame counter stops advancing while
// the simulation is supposed to be running.
type SimulationHealthCheck struct {
	frame  func() uint64
	paused func() bool

	mu   sync.Mutex
	last uint64
	seen bool
}

// NewSimulationHealthCheck creates a check reading the current frame from
// frame. paused may be nil when the host cannot pause.
func NewSimulationHealthCheck(frame func() uint64, paused func() bool) *SimulationHealthCheck {
	return &SimulationHealthCheck{
		frame:  frame,
		paused: paused,
	}
}

// Name returns the name of this health check.
func (s *SimulationHealthCheck) Name() string {
	return "simulation"
}

// Check verifies that frames advanced since the previous check. The first
// call only records the frame.
func (s *SimulationHealthCheck) Check(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.frame()
	defer func() { s.last, s.seen = current, true }()

	if !s.seen || (s.paused != nil && s.paused()) {
		return nil
	}
	if current <= s.last {
		return fmt.Errorf("simulation stalled at frame %d", current)
	}
	return nil
}

// EntityBudgetHealthCheck fails when the live entity count exceeds a limit.
// Obstacles are never culled, so an uncapped run grows without bound.
type EntityBudgetHealthCheck struct {
	maxEntities int
	count       func() int
}

// NewEntityBudgetHealthCheck creates a check against maxEntities.
func NewEntityBudgetHealthCheck(maxEntities int, count func() int) *EntityBudgetHealthCheck {
	return &EntityBudgetHealthCheck{
		maxEntities: maxEntities,
		count:       count,
	}
}

// Name returns the name of this health check.
func (e *EntityBudgetHealthCheck) Name() string {
	return "entities"
}

// Check verifies that the entity count is within the budget.
func (e *EntityBudgetHealthCheck) Check(ctx context.Context) error {
	if n := e.count(); n > e.maxEntities {
		return fmt.Errorf("%d live entities exceed budget %d", n, e.maxEntities)
	}
	return nil
}

// MemoryHealthCheck implements HealthCheck for memory usage monitoring.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a health check for memory usage. A nil
// getMemoryUsage reads the Go heap.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	if getMemoryUsage == nil {
		getMemoryUsage = CurrentMemoryMB
	}
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within acceptable limits.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}

// CurrentMemoryMB returns the allocated heap in megabytes.
func CurrentMemoryMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}
