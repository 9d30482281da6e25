package checker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teluguspell/internal/vocab"
	"teluguspell/pkg/editdistance"
	"teluguspell/pkg/options"
)

func newTestChecker(t *testing.T, words map[string]uint64, opt ...options.Options) *Checker {
	t.Helper()
	c, err := New(context.Background(), vocab.NewIndex(words), nil, opt...)
	require.NoError(t, err)
	return c
}

func TestCandidatesMissingVowelSign(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"మధురమైనదో": 5})

	// The word missing its trailing vowel sign must be recovered via
	// a single insertion, as the only and therefore top candidate.
	got := c.Candidates("మధురమైనద", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "మధురమైనదో", got[0].Word)
	assert.Equal(t, 1, got[0].EditDistance)
	assert.Equal(t, []editdistance.Op{editdistance.OpInsert}, got[0].FoundBy)
	assert.Equal(t, []editdistance.Op{editdistance.OpInsert}, got[0].Operations)
	assert.Equal(t, uint64(5), got[0].Frequency)
}

func TestCandidatesTransposedPair(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"పుస్తకాలు": 10})

	got := c.Candidates("పుసత్కాలు", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "పుస్తకాలు", got[0].Word)
	assert.Equal(t, 1, got[0].EditDistance)
	assert.Equal(t, []editdistance.Op{editdistance.OpTranspose}, got[0].Operations)
}

func TestCandidatesForCorrectWord(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"తెలుగు": 3})
	assert.Empty(t, c.Candidates("తెలుగు", 0))
}

func TestCandidatesNoneWithinBudget(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"తెలుగు": 3})

	// Nothing within two edits: an empty list, never an error.
	assert.Empty(t, c.Candidates("అఅ", 0))
}

func TestCandidatesTwoEditFallback(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"అలమ": 2})

	// "అ" is two insertions away; the 1-edit tier finds nothing so
	// the generator expands every 1-edit string once more.
	got := c.Candidates("అ", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "అలమ", got[0].Word)
	assert.Equal(t, 2, got[0].EditDistance)
	assert.Equal(t, []editdistance.Op{editdistance.OpInsert, editdistance.OpInsert}, got[0].Operations)
}

func TestCandidatesTwoEditDisabled(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"అలమ": 2}, options.WithMaxEditDistance(1))
	assert.Empty(t, c.Candidates("అ", 0))
}

func TestRankingPrefersFrequentWords(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"అల": 5, "అమ": 0})

	// Both are one substitution from "అక"; the frequency-0 member is
	// still a valid candidate but ranks last.
	got := c.Candidates("అక", 0)
	require.Len(t, got, 2)
	assert.Equal(t, "అల", got[0].Word)
	assert.Equal(t, "అమ", got[1].Word)
	assert.Greater(t, got[0].CombinedScore, got[1].CombinedScore)
	assert.Zero(t, got[1].SemanticScore)

	// Frequency 0 does not make the word misspelled.
	assert.True(t, c.IsCorrect("అమ"))
}

func TestRankingDeterministic(t *testing.T) {
	t.Parallel()

	words := map[string]uint64{"అల": 5, "అమ": 5, "అర": 5}
	a := newTestChecker(t, words)
	b := newTestChecker(t, words)

	assert.Equal(t, a.Candidates("అక", 0), b.Candidates("అక", 0))
	// And stable across repeated calls on the same instance.
	assert.Equal(t, a.Candidates("అక", 0), a.Candidates("అక", 0))
}

func TestCandidatesTruncation(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"అల": 5, "అమ": 4, "అర": 3, "అన": 2})

	assert.Len(t, c.Candidates("అక", 0), 4)
	got := c.Candidates("అక", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "అల", got[0].Word)
	assert.Equal(t, "అమ", got[1].Word)
}

func TestCheckDocument(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"మధురమైనదో": 5, "తెలుగు": 3})

	text := "తెలుగు, మధురమైనద!"
	results := c.CheckDocument("doc-1", text)
	require.Len(t, results, 2)

	assert.True(t, results[0].IsCorrect)
	assert.Empty(t, results[0].Candidates)

	assert.False(t, results[1].IsCorrect)
	require.NotEmpty(t, results[1].Candidates)
	assert.Equal(t, "మధురమైనదో", results[1].Candidates[0].Word)
}

func TestCheckDocumentSkipsNonAlphabetRuns(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"తెలుగు": 3})

	// Latin text, digits and punctuation are separators, not errors.
	results := c.CheckDocument("doc-1", "abc 123 తెలుగు ... xyz")
	require.Len(t, results, 1)
	assert.Equal(t, "తెలుగు", results[0].Word)
}

func TestCheckDocumentOverwritesSameID(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"తెలుగు": 3})

	first := c.CheckDocument("doc-1", "తెలుగు తెలుగు")
	second := c.CheckDocument("doc-1", "తెలుగు తెలుగు")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.DocumentCount())
}

func TestCorrectDocument(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"మధురమైనదో": 5, "తెలుగు": 3})

	c.CheckDocument("doc-1", "తెలుగు మధురమైనద, అఅ.")
	corrected, err := c.CorrectDocument("doc-1")
	require.NoError(t, err)

	// The recoverable word is replaced, the unrecoverable one ("అఅ",
	// nothing within two edits) is left alone, separators survive.
	assert.Equal(t, "తెలుగు మధురమైనదో, అఅ.", corrected)
	assert.Equal(t, uint64(1), c.Stats().CorrectionsMade)
}

func TestCorrectDocumentStateMachine(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"తెలుగు": 3})

	_, err := c.CorrectDocument("missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	c.CheckDocument("doc-1", "తెలుగు")
	_, err = c.CorrectDocument("doc-1")
	require.NoError(t, err)

	// Correction is only reachable from checked state.
	_, err = c.CorrectDocument("doc-1")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	// Re-checking resets the state machine.
	c.CheckDocument("doc-1", "తెలుగు")
	_, err = c.CorrectDocument("doc-1")
	assert.NoError(t, err)
}

func TestExportDocument(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"మధురమైనదో": 5, "తెలుగు": 3})

	_, err := c.ExportDocument("missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	c.CheckDocument("doc-1", "తెలుగు మధురమైనద")

	record, err := c.ExportDocument("doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", record.DocumentID)
	assert.Equal(t, "తెలుగు మధురమైనద", record.OriginalText)
	assert.Equal(t, "తెలుగు మధురమైనదో", record.CorrectedText)
	assert.Equal(t, "checked", record.State)
	assert.Equal(t, 2, record.Summary.WordCount)
	assert.Equal(t, 1, record.Summary.MisspelledCount)
	assert.InDelta(t, 50.0, record.Summary.Accuracy, 0.001)
	require.Len(t, record.Results, 2)

	// Export is a pure read: the state machine did not move and the
	// correction counter is untouched.
	assert.Equal(t, uint64(0), c.Stats().CorrectionsMade)
	_, err = c.CorrectDocument("doc-1")
	require.NoError(t, err)

	after, err := c.ExportDocument("doc-1")
	require.NoError(t, err)
	assert.Equal(t, "corrected", after.State)
	assert.Equal(t, record.CorrectedText, after.CorrectedText)
}

func TestCustomWordOverlay(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"తెలుగు": 3})
	ctx := context.Background()

	assert.False(t, c.IsCorrect("అఅ"))
	require.NotNil(t, c.Candidates("అఅ", 0)) // warms the cache

	require.NoError(t, c.AddCustomWord(ctx, "అఅ"))
	assert.True(t, c.IsCorrect("అఅ"))
	assert.Empty(t, c.Candidates("అఅ", 0))

	require.NoError(t, c.RemoveCustomWord(ctx, "అఅ"))
	assert.False(t, c.IsCorrect("అఅ"))
}

func TestStatsCounters(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"మధురమైనదో": 5, "తెలుగు": 3})

	c.CheckDocument("doc-1", "తెలుగు మధురమైనద అఅ")
	_, err := c.CorrectDocument("doc-1")
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, uint64(3), stats.WordsChecked)
	assert.Equal(t, uint64(1), stats.CorrectWords)
	assert.Equal(t, uint64(2), stats.MisspelledWords)
	assert.Equal(t, uint64(1), stats.DocumentsProcessed)
	assert.Equal(t, uint64(1), stats.CandidatesFound)
	assert.Equal(t, uint64(1), stats.CandidatesNotFound)
	assert.Equal(t, uint64(1), stats.CorrectionsMade)
	assert.Equal(t, uint64(1), stats.Operations["INSERT"])
}

func TestClearDocuments(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"తెలుగు": 3})
	c.CheckDocument("doc-1", "తెలుగు")
	require.Equal(t, 1, c.DocumentCount())

	c.ClearDocuments()
	assert.Equal(t, 0, c.DocumentCount())
	_, err := c.ExportDocument("doc-1")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestMinWordLength(t *testing.T) {
	t.Parallel()

	c := newTestChecker(t, map[string]uint64{"తెలుగు": 3}, options.WithMinWordLength(3))

	// "అఅ" is below the threshold and is never flagged.
	results := c.CheckDocument("doc-1", "అఅ")
	require.Len(t, results, 1)
	assert.True(t, results[0].IsCorrect)
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	idx := vocab.NewIndex(nil)
	ctx := context.Background()

	_, err := New(ctx, idx, nil, options.WithMaxEditDistance(0))
	assert.Error(t, err)
	_, err = New(ctx, idx, nil, options.WithMaxCandidates(0))
	assert.Error(t, err)
	_, err = New(ctx, idx, nil, options.WithAlphabetRange('z', 'a'))
	assert.Error(t, err)
}
