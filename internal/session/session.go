package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"compliance-bot/internal/analyst"
	"compliance-bot/internal/catalog"
	"compliance-bot/internal/dialogue"
	"compliance-bot/internal/intake"
	"compliance-bot/internal/report"
)

// Mode selects how the intake collects answers.
type Mode string

const (
	// ModeForm presents all questions as one form pass.
	ModeForm Mode = "form"
	// ModeChat runs the turn-based conversational intake.
	ModeChat Mode = "chat"
)

// ErrNotReady is returned when report generation is requested before the
// completion gate fires.
var ErrNotReady = errors.New("intake is not complete")

// Session is the explicit state object for one intake/report cycle. All
// core state (answers, dialogue, trigger flag, report) lives here and
// nowhere else; nothing is ambient.
type Session struct {
	ID           string
	Mode         Mode
	Catalog      *catalog.Catalog
	Store        *intake.Store
	Driver       *dialogue.Driver
	Orchestrator *analyst.Orchestrator
	Report       *report.Manager
	CreatedAt    time.Time
	LastActivity time.Time
}

// New creates a session with an empty answer store and an absent report.
func New(cat *catalog.Catalog, seq dialogue.Sequencer, capability analyst.Capability, outputDir string, mode Mode) *Session {
	store := intake.NewStore(cat)
	now := time.Now()
	return &Session{
		ID:           uuid.New().String(),
		Mode:         mode,
		Catalog:      cat,
		Store:        store,
		Driver:       dialogue.NewDriver(cat, store, seq),
		Orchestrator: analyst.NewOrchestrator(capability),
		Report:       report.NewManager(outputDir),
		CreatedAt:    now,
		LastActivity: now,
	}
}

// Ready is the completion gate: the single authorization point for
// triggering analysis. Form mode requires a complete store; chat mode
// requires the dialogue to have reached its terminal state.
func (s *Session) Ready() bool {
	switch s.Mode {
	case ModeChat:
		return s.Driver.State() == dialogue.StateFinished
	default:
		return s.Store.IsComplete()
	}
}

// GenerateReport is the only path that invokes the analysis orchestrator.
// It freezes the answer store, moves the report through in-progress, and
// blocks until the capability returns. On failure the report is marked
// failed and then acknowledged back to absent so the cycle can retry.
func (s *Session) GenerateReport(referenceDate time.Time) error {
	if !s.Ready() {
		return ErrNotReady
	}
	if s.Orchestrator.Triggered() {
		return analyst.ErrAlreadyTriggered
	}

	s.Store.Freeze()
	s.LastActivity = time.Now()

	if err := s.Report.Begin(s.ID); err != nil {
		return err
	}

	content, err := s.Orchestrator.Run(s.Store.Snapshot(), referenceDate)
	if err != nil {
		s.Report.Fail(err)
		s.Report.Acknowledge()
		return err
	}

	return s.Report.Store(content)
}

// Reset returns every piece of session state to its initial
// configuration: answers cleared, dialogue back to not-started, trigger
// flag cleared, report absent, previous artifact discarded. This is the
// only operation that starts a new cycle over the same catalog.
func (s *Session) Reset() error {
	s.Store.Reset()
	s.Driver.Reset()
	s.Orchestrator.ResetTrigger()
	s.LastActivity = time.Now()
	return s.Report.Reset()
}
