package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-bot/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Question{
		{ID: 1, Prompt: "Is the company a Small Company?", Shape: catalog.ShapeYesNoUnsure},
		{ID: 2, Prompt: "Turnover in crores?", Shape: catalog.ShapeNumeric},
		{ID: 3, Prompt: "Company name?", Shape: catalog.ShapeFreeText},
	})
	require.NoError(t, err)
	return cat
}

func TestSnapshotAlwaysCoversCatalog(t *testing.T) {
	cat := testCatalog(t)
	store := NewStore(cat)

	// One record per catalog entry, in order, before any answer exists.
	snap := store.Snapshot()
	require.Len(t, snap, cat.Len())
	for i, rec := range snap {
		assert.Equal(t, i+1, rec.Question.ID)
		assert.False(t, rec.Valid)
		assert.Empty(t, rec.Raw)
	}

	require.NoError(t, store.SetAnswer(2, "12.5"))
	snap = store.Snapshot()
	require.Len(t, snap, cat.Len())
	assert.True(t, snap[1].Valid)
}

func TestCompletionScenario(t *testing.T) {
	store := NewStore(testCatalog(t))

	require.NoError(t, store.SetAnswer(1, "Yes"))
	require.NoError(t, store.SetAnswer(2, "12.5"))
	require.NoError(t, store.SetAnswer(3, ""))
	assert.False(t, store.IsComplete(), "empty free-text answer leaves the intake incomplete")

	require.NoError(t, store.SetAnswer(3, "Acme Corp"))
	assert.True(t, store.IsComplete())
	assert.Equal(t, 3, store.Answered())
}

func TestUnsureSatisfiesTriState(t *testing.T) {
	store := NewStore(testCatalog(t))

	require.NoError(t, store.SetAnswer(1, "not sure"))
	snap := store.Snapshot()
	assert.True(t, snap[0].Valid)
	assert.Equal(t, TriUnsure, snap[0].Value.Tri)
}

func TestSetAnswerValidation(t *testing.T) {
	cat, err := catalog.New([]catalog.Question{
		{ID: 1, Prompt: "Listed?", Shape: catalog.ShapeYesNo},
		{ID: 2, Prompt: "Small company?", Shape: catalog.ShapeYesNoUnsure},
		{ID: 3, Prompt: "Turnover?", Shape: catalog.ShapeNumeric},
		{ID: 4, Prompt: "Company type?", Shape: catalog.ShapeChoice, Options: []string{"Private", "Public"}},
		{ID: 5, Prompt: "Notes?", Shape: catalog.ShapeFreeText},
	})
	require.NoError(t, err)
	store := NewStore(cat)

	tests := []struct {
		name       string
		questionID int
		raw        string
		ok         bool
	}{
		{"yes_no accepts yes", 1, "Yes", true},
		{"yes_no accepts shorthand", 1, "n", true},
		{"yes_no rejects maybe", 1, "maybe", false},
		{"yes_no rejects unsure", 1, "unsure", false},
		{"tri-state accepts n/a", 2, "N/A", true},
		{"numeric accepts decimal", 3, "12.5", true},
		{"numeric accepts separators", 3, "1,250", true},
		{"numeric rejects words", 3, "twelve", false},
		{"numeric rejects negative", 3, "-4", false},
		{"choice is case-insensitive", 4, "private", true},
		{"choice rejects unknown option", 4, "LLP", false},
		{"free text accepts anything", 5, "Registered in Pune since 2019", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.SetAnswer(tt.questionID, tt.raw)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.questionID, vErr.QuestionID)
		})
	}
}

func TestChoiceStoresCanonicalOption(t *testing.T) {
	cat, err := catalog.New([]catalog.Question{
		{ID: 1, Prompt: "Company type?", Shape: catalog.ShapeChoice, Options: []string{"Section 8"}},
	})
	require.NoError(t, err)
	store := NewStore(cat)

	require.NoError(t, store.SetAnswer(1, "section 8"))
	snap := store.Snapshot()
	assert.Equal(t, "Section 8", snap[0].Value.Choice)
	assert.Equal(t, "Section 8", snap[0].Value.String())
}

func TestInvalidAnswerLeavesRecordUnchanged(t *testing.T) {
	store := NewStore(testCatalog(t))

	require.NoError(t, store.SetAnswer(2, "42"))
	err := store.SetAnswer(2, "not a number")
	require.Error(t, err)

	snap := store.Snapshot()
	assert.True(t, snap[1].Valid)
	assert.Equal(t, float64(42), snap[1].Value.Number)
}

func TestEmptyAnswerClearsRecord(t *testing.T) {
	store := NewStore(testCatalog(t))

	require.NoError(t, store.SetAnswer(2, "42"))
	require.NoError(t, store.SetAnswer(2, "   "))

	snap := store.Snapshot()
	assert.False(t, snap[1].Valid)
	assert.False(t, store.IsComplete())
}

func TestUnknownQuestionID(t *testing.T) {
	store := NewStore(testCatalog(t))
	assert.Error(t, store.SetAnswer(99, "Yes"))
}

func TestFreezeBlocksWrites(t *testing.T) {
	store := NewStore(testCatalog(t))
	require.NoError(t, store.SetAnswer(1, "Yes"))

	store.Freeze()
	assert.True(t, store.Frozen())

	err := store.SetAnswer(1, "No")
	assert.ErrorIs(t, err, ErrFrozen)

	snap := store.Snapshot()
	assert.Equal(t, "Yes", snap[0].Raw)
}

func TestResetRestoresInitialState(t *testing.T) {
	store := NewStore(testCatalog(t))
	require.NoError(t, store.SetAnswer(1, "Yes"))
	store.Freeze()

	store.Reset()

	assert.False(t, store.Frozen())
	assert.Equal(t, 0, store.Answered())
	require.NoError(t, store.SetAnswer(1, "No"))
}

func TestSnapshotIsIsolated(t *testing.T) {
	cat, err := catalog.New([]catalog.Question{
		{ID: 1, Prompt: "Company type?", Shape: catalog.ShapeChoice, Options: []string{"Private", "Public"}},
	})
	require.NoError(t, err)
	store := NewStore(cat)

	snap := store.Snapshot()
	snap[0].Raw = "mutated"
	snap[0].Question.Options[0] = "mutated"

	fresh := store.Snapshot()
	assert.Empty(t, fresh[0].Raw)
	assert.Equal(t, "Private", fresh[0].Question.Options[0])
}

func TestValueStringRendering(t *testing.T) {
	cat := testCatalog(t)
	q2, _ := cat.Question(2)

	v, err := ParseValue(q2, "1,250.50")
	require.NoError(t, err)
	assert.Equal(t, "1250.5", v.String())

	q1, _ := cat.Question(1)
	v, err = ParseValue(q1, "no")
	require.NoError(t, err)
	assert.Equal(t, "No", v.String())

	var vErr *ValidationError
	_, err = ParseValue(q2, "")
	require.ErrorAs(t, err, &vErr)
}
