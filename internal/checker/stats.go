package checker

import (
	"sync"

	"teluguspell/pkg/editdistance"
)

// stats are process-lifetime counters, owned by one Checker instance
// and guarded by their own mutex since documents may be checked from
// concurrent requests.
type stats struct {
	mu sync.Mutex

	wordsChecked       uint64
	correctWords       uint64
	misspelledWords    uint64
	documentsProcessed uint64
	correctionsMade    uint64
	candidatesFound    uint64
	candidatesNotFound uint64
	ops                map[editdistance.Op]uint64
}

func newStats() *stats {
	return &stats{ops: make(map[editdistance.Op]uint64)}
}

func (s *stats) wordChecked(correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wordsChecked++
	if correct {
		s.correctWords++
	} else {
		s.misspelledWords++
	}
}

// candidateOutcome records whether a misspelled word got candidates and
// tallies the operation kinds of the top candidate's path.
func (s *stats) candidateOutcome(found bool, topOps []editdistance.Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !found {
		s.candidatesNotFound++
		return
	}
	s.candidatesFound++
	for _, op := range topOps {
		s.ops[op]++
	}
}

func (s *stats) documentProcessed() {
	s.mu.Lock()
	s.documentsProcessed++
	s.mu.Unlock()
}

func (s *stats) correctionsApplied(n uint64) {
	s.mu.Lock()
	s.correctionsMade += n
	s.mu.Unlock()
}

// Statistics is a point-in-time snapshot of the checker's counters.
type Statistics struct {
	WordsChecked       uint64            `json:"words_checked"`
	CorrectWords       uint64            `json:"correct_words"`
	MisspelledWords    uint64            `json:"misspelled_words"`
	DocumentsProcessed uint64            `json:"documents_processed"`
	CorrectionsMade    uint64            `json:"corrections_made"`
	CandidatesFound    uint64            `json:"candidates_found"`
	CandidatesNotFound uint64            `json:"candidates_not_found"`
	Operations         map[string]uint64 `json:"operations"`
}

func (s *stats) snapshot() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := make(map[string]uint64, len(s.ops))
	for op, n := range s.ops {
		ops[op.String()] = n
	}
	return Statistics{
		WordsChecked:       s.wordsChecked,
		CorrectWords:       s.correctWords,
		MisspelledWords:    s.misspelledWords,
		DocumentsProcessed: s.documentsProcessed,
		CorrectionsMade:    s.correctionsMade,
		CandidatesFound:    s.candidatesFound,
		CandidatesNotFound: s.candidatesNotFound,
		Operations:         ops,
	}
}
