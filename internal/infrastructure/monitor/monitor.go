package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Probe reports whether a dependency is reachable.
type Probe func(ctx context.Context) error

// Monitor runs the registered probes concurrently on demand.
type Monitor struct {
	timeout time.Duration
	logger  *zap.Logger

	mu       sync.RWMutex
	probes   map[string]Probe
	optional map[string]bool
}

func New(timeout time.Duration, logger *zap.Logger) *Monitor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		timeout:  timeout,
		logger:   logger,
		probes:   make(map[string]Probe),
		optional: make(map[string]bool),
	}
}

// Register adds a probe whose failure marks the service unhealthy.
func (m *Monitor) Register(name string, probe Probe) {
	m.add(name, probe, false)
}

// RegisterOptional adds a probe that is reported but does not affect overall health.
func (m *Monitor) RegisterOptional(name string, probe Probe) {
	m.add(name, probe, true)
}

func (m *Monitor) add(name string, probe Probe, optional bool) {
	if probe == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probes[name] = probe
	m.optional[name] = optional
}

// Check runs every probe with its own timeout and aggregates the results.
func (m *Monitor) Check(ctx context.Context) Status {
	m.mu.RLock()
	probes := make(map[string]Probe, len(m.probes))
	for name, probe := range m.probes {
		probes[name] = probe
	}
	m.mu.RUnlock()

	var (
		resMu   sync.Mutex
		results = make(map[string]bool, len(probes))
	)

	g, gctx := errgroup.WithContext(ctx)
	for name, probe := range probes {
		name, probe := name, probe
		g.Go(func() error {
			probeCtx, cancel := context.WithTimeout(gctx, m.timeout)
			defer cancel()

			err := probe(probeCtx)
			if err != nil {
				m.logger.Warn("health probe failed", zap.String("service", name), zap.Error(err))
			}
			resMu.Lock()
			results[name] = err == nil
			resMu.Unlock()
			// probe failures are reported, not propagated, so siblings keep running
			return nil
		})
	}
	_ = g.Wait()

	healthy := true
	m.mu.RLock()
	for name, ok := range results {
		if !ok && !m.optional[name] {
			healthy = false
		}
	}
	m.mu.RUnlock()

	return Status{
		Services:  results,
		Healthy:   healthy,
		LastCheck: time.Now().UTC(),
	}
}
