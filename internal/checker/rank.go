package checker

import (
	"math"
	"sort"
	"unicode/utf8"

	"teluguspell/pkg/editdistance"
)

// Ranking weights. The combined score prefers frequent words, then
// fewer edits, then similar length.
const (
	semanticWeight = 100.0
	editPenalty    = 10.0
	lengthPenalty  = 0.5
)

// rank scores the candidates against the misspelled word and returns
// them ordered by descending combined score, ties broken by ascending
// edit distance, then descending frequency. The result is truncated to
// maxCandidates.
func (c *Checker) rank(misspelled string, cands []EditCandidate, maxCandidates int) []RankedCandidate {
	if len(cands) == 0 {
		return []RankedCandidate{}
	}

	maxFreq := float64(c.index.MaxFrequency())
	srcLen := utf8.RuneCountInString(misspelled)

	ranked := make([]RankedCandidate, 0, len(cands))
	for _, cand := range cands {
		dist, ops := editdistance.Trace(misspelled, cand.Word)
		cand.EditDistance = dist
		cand.Operations = ops

		freq := float64(cand.Frequency)
		semantic := math.Log(freq+1) * (freq / maxFreq)
		lenDiff := utf8.RuneCountInString(cand.Word) - srcLen
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		combined := semantic*semanticWeight - float64(dist)*editPenalty - float64(lenDiff)*lengthPenalty

		ranked = append(ranked, RankedCandidate{
			EditCandidate: cand,
			SemanticScore: semantic,
			CombinedScore: combined,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CombinedScore != ranked[j].CombinedScore {
			return ranked[i].CombinedScore > ranked[j].CombinedScore
		}
		if ranked[i].EditDistance != ranked[j].EditDistance {
			return ranked[i].EditDistance < ranked[j].EditDistance
		}
		return ranked[i].Frequency > ranked[j].Frequency
	})

	if maxCandidates > 0 && len(ranked) > maxCandidates {
		ranked = ranked[:maxCandidates]
	}
	return ranked
}
