package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-bot/internal/catalog"
	"compliance-bot/internal/intake"
	"compliance-bot/internal/search"
)

func TestInterviewerPromptCoversCatalog(t *testing.T) {
	cat := catalog.Default()
	prompt := Interviewer(cat)

	for _, q := range cat.Questions() {
		assert.Contains(t, prompt, q.Prompt)
	}
	assert.Contains(t, prompt, `"Thank You"`)
	assert.Contains(t, prompt, "ONE question per message")
	assert.Contains(t, prompt, "(Yes / No / Not Sure)")
	assert.Contains(t, prompt, "Section 8")
}

func TestAnalystPrompt(t *testing.T) {
	cat, err := catalog.New([]catalog.Question{
		{ID: 1, Prompt: "Listed?", Shape: catalog.ShapeYesNo},
		{ID: 2, Prompt: "Turnover?", Shape: catalog.ShapeNumeric},
	})
	require.NoError(t, err)

	store := intake.NewStore(cat)
	require.NoError(t, store.SetAnswer(1, "yes"))

	results := []search.Result{
		{Title: "CSR thresholds", Link: "https://www.mca.gov.in/csr", Snippet: "Section 135 applies when..."},
	}
	prompt := Analyst(store.Snapshot(), "29-08-2026", results)

	assert.Contains(t, prompt, "REFERENCE DATE: 29-08-2026")
	assert.Contains(t, prompt, "Answer: Yes")
	// Unanswered questions still appear, marked as such, so the report
	// records them instead of omitting them.
	assert.Contains(t, prompt, "Turnover?")
	assert.Contains(t, prompt, "(not answered)")
	assert.Contains(t, prompt, "https://www.mca.gov.in/csr")
	assert.Contains(t, prompt, "Do not omit entries")
}

func TestAnalystPromptWithoutSearchResults(t *testing.T) {
	cat, err := catalog.New([]catalog.Question{
		{ID: 1, Prompt: "Listed?", Shape: catalog.ShapeYesNo},
	})
	require.NoError(t, err)
	store := intake.NewStore(cat)

	prompt := Analyst(store.Snapshot(), "01-01-2026", nil)
	assert.NotContains(t, prompt, "OFFICIAL SOURCE EXTRACTS")
}
