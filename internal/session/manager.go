package session

import (
	"sync"
	"time"

	"compliance-bot/internal/analyst"
	"compliance-bot/internal/catalog"
	"compliance-bot/internal/dialogue"
	"compliance-bot/internal/metrics"
)

// Manager keys sessions by ID so concurrent sessions never share a
// trigger flag, answer store or report.
type Manager struct {
	catalog    *catalog.Catalog
	sequencer  dialogue.Sequencer
	capability analyst.Capability
	outputDir  string

	sessions map[string]*Session
	mu       sync.RWMutex
	metrics  *metrics.Metrics
}

// NewManager creates a session manager and starts the idle cleanup.
func NewManager(cat *catalog.Catalog, seq dialogue.Sequencer, capability analyst.Capability, outputDir string) *Manager {
	m := &Manager{
		catalog:    cat,
		sequencer:  seq,
		capability: capability,
		outputDir:  outputDir,
		sessions:   make(map[string]*Session),
		metrics:    metrics.NewMetrics(),
	}
	m.startCleanup()
	return m
}

// Create starts a new session in the given mode.
func (m *Manager) Create(mode Mode) *Session {
	s := New(m.catalog, m.sequencer, m.capability, m.outputDir, mode)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.metrics.IncrementIntakesStarted()
	return s
}

// Get returns the session with the given ID, if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove drops a session.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Metrics exposes the shared counters.
func (m *Manager) Metrics() *metrics.Metrics {
	return m.metrics
}

func (m *Manager) startCleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for range ticker.C {
			m.cleanupInactiveSessions()
		}
	}()
}

func (m *Manager) cleanupInactiveSessions() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-24 * time.Hour)
	for id, s := range m.sessions {
		if s.LastActivity.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
