package metrics

import (
	"sync"
	"time"
)

// Metrics counts intake and report activity across sessions.
type Metrics struct {
	mu               sync.RWMutex
	IntakesStarted   int64
	IntakesCompleted int64
	QuestionsAsked   int64
	ReportsGenerated int64
	ReportsFailed    int64
	LastUpdateTime   time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementIntakesStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IntakesStarted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementIntakesCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IntakesCompleted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementQuestionsAsked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsAsked++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementReportsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportsGenerated++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementReportsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportsFailed++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Metrics{
		IntakesStarted:   m.IntakesStarted,
		IntakesCompleted: m.IntakesCompleted,
		QuestionsAsked:   m.QuestionsAsked,
		ReportsGenerated: m.ReportsGenerated,
		ReportsFailed:    m.ReportsFailed,
		LastUpdateTime:   m.LastUpdateTime,
	}
}
