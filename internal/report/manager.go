package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Status is the report's lifecycle state.
type Status string

const (
	StatusAbsent     Status = "absent"
	StatusInProgress Status = "in_progress"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

// ErrNotReady is returned when Export is called in any state but ready.
var ErrNotReady = errors.New("no report is ready")

// Manager owns the generated report: it holds the content verbatim,
// persists it as an artifact under the output directory, and exposes
// export and reset. Only Reset returns a ready report to absent.
type Manager struct {
	dir      string
	intakeID string
	status   Status
	content  string
	failure  error
}

// NewManager creates a manager with no report.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir, status: StatusAbsent}
}

// Begin marks the report as in progress for the given intake cycle.
func (m *Manager) Begin(intakeID string) error {
	if m.status != StatusAbsent {
		return fmt.Errorf("cannot begin report in state %s", m.status)
	}
	m.intakeID = intakeID
	m.status = StatusInProgress
	m.failure = nil
	return nil
}

// Store transitions to ready, holding content verbatim, and persists the
// artifact. The content is already the final report; it is never
// reformatted.
func (m *Manager) Store(content string) error {
	if m.status != StatusInProgress {
		return fmt.Errorf("cannot store report in state %s", m.status)
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory %s: %w", m.dir, err)
	}
	if err := os.WriteFile(m.ArtifactPath(), []byte(content), 0644); err != nil {
		return fmt.Errorf("error saving report: %w", err)
	}

	m.content = content
	m.status = StatusReady
	return nil
}

// Fail records a failed generation attempt.
func (m *Manager) Fail(cause error) error {
	if m.status != StatusInProgress {
		return fmt.Errorf("cannot fail report in state %s", m.status)
	}
	m.failure = cause
	m.status = StatusFailed
	return nil
}

// Acknowledge returns a failed report to absent so the cycle can retry.
func (m *Manager) Acknowledge() {
	if m.status == StatusFailed {
		m.status = StatusAbsent
		m.intakeID = ""
		m.failure = nil
	}
}

// Get returns the current status and content. Callers render the content
// only when the status is ready.
func (m *Manager) Get() (Status, string) {
	return m.status, m.content
}

// Failure returns the recorded cause of a failed generation, if any.
func (m *Manager) Failure() error {
	return m.failure
}

// Restore loads a previously persisted artifact back into the manager,
// e.g. in a fresh process serving an export.
func (m *Manager) Restore(intakeID string) error {
	m.intakeID = intakeID
	data, err := os.ReadFile(m.ArtifactPath())
	if err != nil {
		return fmt.Errorf("error reading report artifact: %w", err)
	}
	m.content = string(data)
	m.status = StatusReady
	return nil
}

// Export writes the report content byte-for-byte to the given path. When
// path is empty the default date-stamped filename under the output
// directory is used. Returns the path written.
func (m *Manager) Export(path string) (string, error) {
	if m.status != StatusReady {
		return "", ErrNotReady
	}
	if path == "" {
		path = filepath.Join(m.dir, DefaultExportName(time.Now()))
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(m.content), 0644); err != nil {
		return "", fmt.Errorf("error exporting report: %w", err)
	}
	return path, nil
}

// Reset clears all report state back to absent and discards the
// persisted artifact of the previous cycle.
func (m *Manager) Reset() error {
	if m.intakeID != "" {
		err := os.Remove(m.ArtifactPath())
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error removing report artifact: %w", err)
		}
	}
	m.intakeID = ""
	m.status = StatusAbsent
	m.content = ""
	m.failure = nil
	return nil
}

// ArtifactPath is where the current cycle's report is persisted.
func (m *Manager) ArtifactPath() string {
	return filepath.Join(m.dir, fmt.Sprintf("compliance_report_%s.md", m.intakeID))
}

// DefaultExportName embeds a date stamp in the exported filename.
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("compliance_report_%s.md", now.Format("2006-01-02"))
}
