package ratelimit

import (
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Monitor enforces a per-client sliding-window request limit and keeps
// a permanent block set for clients that exceed it. Blocks never
// expire for the lifetime of the process; there is no unblock
// operation.
//
// Monitor is safe for concurrent use.
type Monitor struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	requests map[string][]time.Time
	blocked  map[string]string

	logger *slog.Logger
	now    func() time.Time
}

// New creates a Monitor allowing limit requests per window per client.
func New(limit int, window time.Duration, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		limit:    limit,
		window:   window,
		requests: make(map[string][]time.Time),
		blocked:  make(map[string]string),
		logger:   logger,
		now:      time.Now,
	}
}

// Allow records a request attempt by clientID and reports whether it
// may proceed. A client whose in-window count has already reached the
// limit is blocked permanently and the rejected attempt is not
// recorded, so the window draining later does not unblock it.
func (m *Monitor) Allow(clientID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blocked[clientID]; ok {
		return false
	}

	now := m.now()
	recent := m.pruneLocked(clientID, now)

	if len(recent) >= m.limit {
		m.blockLocked(clientID, "rate limit exceeded")
		return false
	}

	m.requests[clientID] = append(recent, now)
	return true
}

// IsBlocked reports whether clientID is in the block set.
func (m *Monitor) IsBlocked(clientID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.blocked[clientID]
	return ok
}

// Block adds clientID to the block set with the given reason. Blocking
// an already blocked client is a no-op and keeps the original reason.
func (m *Monitor) Block(clientID, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blockLocked(clientID, reason)
}

// blockLocked inserts into the block set and logs the transition.
// Callers must hold m.mu.
func (m *Monitor) blockLocked(clientID, reason string) {
	if _, ok := m.blocked[clientID]; ok {
		return
	}
	m.blocked[clientID] = reason
	m.logger.Warn("Client blocked",
		"client_id", clientID,
		"reason", reason,
	)
}

// pruneLocked drops timestamps older than the window and returns the
// surviving slice. Callers must hold m.mu.
func (m *Monitor) pruneLocked(clientID string, now time.Time) []time.Time {
	cutoff := now.Add(-m.window)
	recent := m.requests[clientID][:0]
	for _, ts := range m.requests[clientID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	return recent
}

// Summary returns the number of clients with in-window activity and
// the number of blocked clients. Stale request records are pruned as a
// side effect, which bounds memory between summary runs.
func (m *Monitor) Summary() (active, blocked int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id := range m.requests {
		recent := m.pruneLocked(id, now)
		if len(recent) == 0 {
			delete(m.requests, id)
			continue
		}
		m.requests[id] = recent
	}
	return len(m.requests), len(m.blocked)
}

// ScheduleSummary registers an hourly job on c that logs active and
// blocked client counts.
func (m *Monitor) ScheduleSummary(c *cron.Cron) error {
	_, err := c.AddFunc("0 * * * *", func() {
		active, blocked := m.Summary()
		m.logger.Info("Rate limit summary",
			"active_clients", active,
			"blocked_clients", blocked,
		)
	})
	return err
}
