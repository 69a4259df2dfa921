package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-bot/internal/analyst"
	"compliance-bot/internal/catalog"
	"compliance-bot/internal/dialogue"
	"compliance-bot/internal/report"
)

type orderedSequencer struct{}

func (orderedSequencer) NextPrompt(cat *catalog.Catalog, transcript []dialogue.Exchange) (string, error) {
	asked := 0
	for _, ex := range transcript {
		if ex.Role == dialogue.RoleAssistant {
			asked++
		}
	}
	if asked >= cat.Len() {
		return dialogue.TerminalSentinel, nil
	}
	q, _ := cat.Question(asked + 1)
	return q.Prompt, nil
}

type fakeCapability struct {
	content string
	err     error
	calls   int
}

func (f *fakeCapability) Analyze(req analyst.Request) (analyst.Result, error) {
	f.calls++
	return analyst.Result{Content: f.content}, f.err
}

func sessionCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Question{
		{ID: 1, Prompt: "Listed?", Shape: catalog.ShapeYesNo},
		{ID: 2, Prompt: "Turnover?", Shape: catalog.ShapeNumeric},
	})
	require.NoError(t, err)
	return cat
}

func newTestSession(t *testing.T, mode Mode, capability analyst.Capability) *Session {
	t.Helper()
	return New(sessionCatalog(t), orderedSequencer{}, capability, t.TempDir(), mode)
}

func TestGateFormMode(t *testing.T) {
	s := newTestSession(t, ModeForm, &fakeCapability{content: "report"})

	assert.False(t, s.Ready())
	require.NoError(t, s.Store.SetAnswer(1, "Yes"))
	assert.False(t, s.Ready())
	require.NoError(t, s.Store.SetAnswer(2, "10"))
	assert.True(t, s.Ready())
}

func TestGateChatMode(t *testing.T) {
	s := newTestSession(t, ModeChat, &fakeCapability{content: "report"})

	// A complete store is not enough in chat mode; the dialogue itself
	// must have reached its terminal state.
	require.NoError(t, s.Store.SetAnswer(1, "Yes"))
	require.NoError(t, s.Store.SetAnswer(2, "10"))
	assert.False(t, s.Ready())

	_, err := s.Driver.Start()
	require.NoError(t, err)
	_, err = s.Driver.Submit("Yes")
	require.NoError(t, err)
	_, err = s.Driver.Submit("10")
	require.NoError(t, err)

	assert.True(t, s.Ready())
}

func TestGenerateReportBlockedBeforeGate(t *testing.T) {
	capability := &fakeCapability{content: "report"}
	s := newTestSession(t, ModeForm, capability)

	err := s.GenerateReport(time.Now())
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, 0, capability.calls, "no code path may trigger analysis before the gate")
}

func TestGenerateReportHappyPath(t *testing.T) {
	capability := &fakeCapability{content: "# Report"}
	s := newTestSession(t, ModeForm, capability)
	require.NoError(t, s.Store.SetAnswer(1, "Yes"))
	require.NoError(t, s.Store.SetAnswer(2, "10"))

	require.NoError(t, s.GenerateReport(time.Now()))

	status, content := s.Report.Get()
	assert.Equal(t, report.StatusReady, status)
	assert.Equal(t, "# Report", content)
	assert.True(t, s.Store.Frozen(), "the store is read-only once the gate fires")
	assert.Equal(t, 1, capability.calls)
}

func TestGenerateReportSingleShot(t *testing.T) {
	capability := &fakeCapability{content: "# Report"}
	s := newTestSession(t, ModeForm, capability)
	require.NoError(t, s.Store.SetAnswer(1, "Yes"))
	require.NoError(t, s.Store.SetAnswer(2, "10"))

	require.NoError(t, s.GenerateReport(time.Now()))

	err := s.GenerateReport(time.Now())
	assert.ErrorIs(t, err, analyst.ErrAlreadyTriggered)
	assert.Equal(t, 1, capability.calls)
}

func TestGenerateReportFailureAllowsRetry(t *testing.T) {
	capability := &fakeCapability{err: errors.New("capability unreachable")}
	s := newTestSession(t, ModeForm, capability)
	require.NoError(t, s.Store.SetAnswer(1, "Yes"))
	require.NoError(t, s.Store.SetAnswer(2, "10"))

	err := s.GenerateReport(time.Now())
	var aErr *analyst.AnalysisError
	require.ErrorAs(t, err, &aErr)

	// No partial report, trigger cleared, prior answers intact.
	status, _ := s.Report.Get()
	assert.Equal(t, report.StatusAbsent, status)
	assert.False(t, s.Orchestrator.Triggered())
	assert.Equal(t, 2, s.Store.Answered())

	capability.err = nil
	capability.content = "# Report"
	require.NoError(t, s.GenerateReport(time.Now()))
	status, _ = s.Report.Get()
	assert.Equal(t, report.StatusReady, status)
}

func TestResetStartsNewCycle(t *testing.T) {
	capability := &fakeCapability{content: "# First"}
	s := newTestSession(t, ModeChat, capability)

	_, err := s.Driver.Start()
	require.NoError(t, err)
	_, err = s.Driver.Submit("Yes")
	require.NoError(t, err)
	_, err = s.Driver.Submit("10")
	require.NoError(t, err)
	require.NoError(t, s.GenerateReport(time.Now()))
	artifact := s.Report.ArtifactPath()

	require.NoError(t, s.Reset())

	assert.Equal(t, dialogue.StateNotStarted, s.Driver.State())
	assert.Equal(t, 0, s.Store.Answered())
	assert.False(t, s.Store.Frozen())
	assert.False(t, s.Orchestrator.Triggered())
	status, _ := s.Report.Get()
	assert.Equal(t, report.StatusAbsent, status)
	assert.NoFileExists(t, artifact)

	// The next cycle reaches ready independently of the prior one.
	capability.content = "# Second"
	_, err = s.Driver.Start()
	require.NoError(t, err)
	_, err = s.Driver.Submit("No")
	require.NoError(t, err)
	_, err = s.Driver.Submit("250")
	require.NoError(t, err)
	require.NoError(t, s.GenerateReport(time.Now()))

	status, content := s.Report.Get()
	assert.Equal(t, report.StatusReady, status)
	assert.Equal(t, "# Second", content)
}

func TestManagerIsolatesSessions(t *testing.T) {
	capability := &fakeCapability{content: "# Report"}
	m := NewManager(sessionCatalog(t), orderedSequencer{}, capability, t.TempDir())

	a := m.Create(ModeForm)
	b := m.Create(ModeForm)
	require.NotEqual(t, a.ID, b.ID)

	for _, s := range []*Session{a, b} {
		require.NoError(t, s.Store.SetAnswer(1, "Yes"))
		require.NoError(t, s.Store.SetAnswer(2, "10"))
	}

	require.NoError(t, a.GenerateReport(time.Now()))

	// One session's trigger flag never gates another's.
	assert.False(t, b.Orchestrator.Triggered())
	require.NoError(t, b.GenerateReport(time.Now()))
	assert.Equal(t, 2, capability.calls)

	got, ok := m.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	m.Remove(a.ID)
	_, ok = m.Get(a.ID)
	assert.False(t, ok)

	assert.Equal(t, int64(2), m.Metrics().GetSnapshot().IntakesStarted)
}
