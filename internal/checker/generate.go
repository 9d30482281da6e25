package checker

import (
	"sort"

	"teluguspell/pkg/editdistance"
)

// edit is one synthesized string plus the operation that produced it.
type edit struct {
	word string
	op   editdistance.Op
}

// edits1 synthesizes every string exactly one operation away from word
// over the configured alphabet. Order is deterministic: deletions,
// transpositions, substitutions, insertions, each iterating positions
// first and the alphabet second, so repeated calls discover candidates
// in the same order.
func (c *Checker) edits1(word string) []edit {
	r := []rune(word)
	n := len(r)
	lo, hi := c.opts.AlphabetLo, c.opts.AlphabetHi
	alpha := int(hi-lo) + 1

	out := make([]edit, 0, 2*n+1+(2*n+1)*alpha)

	// DELETE: drop each rune
	for i := 0; i < n; i++ {
		w := string(r[:i]) + string(r[i+1:])
		if w != "" {
			out = append(out, edit{w, editdistance.OpDelete})
		}
	}

	// TRANSPOSE: swap each adjacent pair
	for i := 0; i+1 < n; i++ {
		sw := make([]rune, n)
		copy(sw, r)
		sw[i], sw[i+1] = sw[i+1], sw[i]
		out = append(out, edit{string(sw), editdistance.OpTranspose})
	}

	// SUBSTITUTE: replace each rune with every other alphabet rune
	for i := 0; i < n; i++ {
		for ch := lo; ch <= hi; ch++ {
			if ch == r[i] {
				continue
			}
			out = append(out, edit{string(r[:i]) + string(ch) + string(r[i+1:]), editdistance.OpSubstitute})
		}
	}

	// INSERT: add every alphabet rune at every position
	for i := 0; i <= n; i++ {
		for ch := lo; ch <= hi; ch++ {
			out = append(out, edit{string(r[:i]) + string(ch) + string(r[i:]), editdistance.OpInsert})
		}
	}

	return out
}

// generateCandidates collects vocabulary words within one operation of
// word; if none survive the filter, every generated 1-edit string is
// expanded once more and the 2-edit strings are filtered instead. The
// search is a fixed two-tier retry, never deeper.
func (c *Checker) generateCandidates(word string) []EditCandidate {
	firstEdits := c.edits1(word)

	found := make(map[string][]editdistance.Op)
	var order []string
	tag := func(w string, ops ...editdistance.Op) {
		if _, ok := found[w]; !ok {
			order = append(order, w)
		}
		for _, op := range ops {
			if !containsOp(found[w], op) {
				found[w] = append(found[w], op)
			}
		}
	}

	for _, e := range firstEdits {
		if e.word != word && c.index.Contains(e.word) {
			tag(e.word, e.op)
		}
	}

	if len(order) == 0 && c.opts.MaxEditDistance >= 2 {
		limit := c.opts.TwoEditCandidateCap
	outer:
		for _, e1 := range firstEdits {
			for _, e2 := range c.edits1(e1.word) {
				if e2.word == word || !c.index.Contains(e2.word) {
					continue
				}
				tag(e2.word, e1.op, e2.op)
				if len(order) >= limit {
					break outer
				}
			}
		}
	}

	cands := make([]EditCandidate, 0, len(order))
	for _, w := range order {
		ops := found[w]
		sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
		cands = append(cands, EditCandidate{
			Word:      w,
			FoundBy:   ops,
			Frequency: c.index.FrequencyOf(w),
		})
	}
	return cands
}

func containsOp(ops []editdistance.Op, op editdistance.Op) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}
