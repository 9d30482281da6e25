package checker

import (
	"time"

	"teluguspell/pkg/editdistance"
)

// EditCandidate is a vocabulary word reachable from a misspelled word
// within the edit budget.
type EditCandidate struct {
	Word string `json:"word"`
	// FoundBy lists every operation kind that discovered this word
	// during candidate generation, in a fixed order without
	// duplicates. A word reachable both by deletion and by
	// substitution carries both tags.
	FoundBy []editdistance.Op `json:"found_by"`
	// Operations is the backtraced minimal operation path from the
	// misspelled word to this candidate.
	Operations   []editdistance.Op `json:"operations"`
	EditDistance int               `json:"edit_distance"`
	Frequency    uint64            `json:"frequency"`
}

// RankedCandidate is an EditCandidate with its ranking scores.
type RankedCandidate struct {
	EditCandidate
	SemanticScore float64 `json:"semantic_score"`
	CombinedScore float64 `json:"combined_score"`
}

// WordCheckResult is the outcome for a single token of a document.
type WordCheckResult struct {
	Word       string            `json:"word"`
	IsCorrect  bool              `json:"is_correct"`
	Candidates []RankedCandidate `json:"candidates"`
}

// DocumentState tracks the per-document state machine.
type DocumentState uint8

const (
	StateChecked DocumentState = iota
	StateCorrected
)

func (s DocumentState) String() string {
	switch s {
	case StateChecked:
		return "checked"
	case StateCorrected:
		return "corrected"
	}
	return "unknown"
}

// Document is a checked unit of text, keyed by a caller-assigned id.
// Documents live in the checker's table until overwritten or cleared.
type Document struct {
	ID        string
	Text      string
	Words     []string
	Results   []WordCheckResult
	State     DocumentState
	Corrected string // set once the document is corrected
	CheckedAt time.Time

	// byte offsets of each word in Text, parallel to Words
	spans [][2]int
}

// DocumentSummary aggregates a checked document.
type DocumentSummary struct {
	WordCount       int     `json:"word_count"`
	MisspelledCount int     `json:"misspelled_count"`
	Accuracy        float64 `json:"accuracy"`
}

// ExportRecord is the serialization-boundary shape of a document: the
// core defines the record, encoding belongs to the caller.
type ExportRecord struct {
	DocumentID    string            `json:"document_id"`
	CheckedAt     time.Time         `json:"checked_at"`
	OriginalText  string            `json:"original_text"`
	CorrectedText string            `json:"corrected_text"`
	State         string            `json:"state"`
	Summary       DocumentSummary   `json:"summary"`
	Results       []WordCheckResult `json:"results"`
}
