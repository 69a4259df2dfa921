package analyst

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"compliance-bot/internal/intake"
)

// ErrAlreadyTriggered is returned when Run is called while a dispatch for
// the current cycle has already happened. Only a reset clears it.
var ErrAlreadyTriggered = errors.New("analysis already triggered for this cycle")

// AnalysisError reports a failed analysis run: capability unreachable,
// empty result, or missing output artifact. The trigger flag is cleared
// so the cycle can be retried; no partial report is fabricated.
type AnalysisError struct {
	Cause error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %v", e.Cause)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Orchestrator issues exactly one analysis request per completed intake
// cycle and captures the result.
type Orchestrator struct {
	capability Capability

	mu        sync.Mutex
	triggered bool
}

// NewOrchestrator creates an orchestrator around a capability.
func NewOrchestrator(capability Capability) *Orchestrator {
	return &Orchestrator{capability: capability}
}

// Triggered reports whether a dispatch has happened this cycle.
func (o *Orchestrator) Triggered() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.triggered
}

// ResetTrigger clears the single-shot flag, starting a new cycle.
func (o *Orchestrator) ResetTrigger() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.triggered = false
}

// Run builds the analysis request and dispatches it, blocking until the
// capability returns. The trigger flag is set atomically before dispatch;
// a second call in the same cycle fails fast with ErrAlreadyTriggered and
// performs no dispatch. On failure the flag is cleared so the caller can
// retry.
func (o *Orchestrator) Run(snapshot []intake.Record, referenceDate time.Time) (string, error) {
	o.mu.Lock()
	if o.triggered {
		o.mu.Unlock()
		return "", ErrAlreadyTriggered
	}
	o.triggered = true
	o.mu.Unlock()

	req := NewRequest(snapshot, referenceDate)

	result, err := o.capability.Analyze(req)
	if err != nil {
		o.ResetTrigger()
		return "", &AnalysisError{Cause: err}
	}

	content := result.Content
	if strings.TrimSpace(content) == "" && result.ArtifactPath != "" {
		data, err := os.ReadFile(result.ArtifactPath)
		if err != nil {
			o.ResetTrigger()
			return "", &AnalysisError{Cause: fmt.Errorf("error reading output artifact %s: %w", result.ArtifactPath, err)}
		}
		content = string(data)
	}

	if strings.TrimSpace(content) == "" {
		o.ResetTrigger()
		return "", &AnalysisError{Cause: errors.New("analysis capability returned no content")}
	}

	return content, nil
}
