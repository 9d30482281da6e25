package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"teluguspell/internal/customdict"
	"teluguspell/internal/vocab"
	"teluguspell/pkg/options"
)

// ErrDocumentNotFound is returned when an operation needs a document in
// checked state and no such document exists under the given id.
var ErrDocumentNotFound = errors.New("checker: document not found")

// Checker detects and corrects misspelled words against an immutable
// vocabulary index. The index is never mutated; the candidate cache,
// document table, custom-word overlay and statistics are the only
// mutable state and each carries its own synchronization, so one
// Checker instance can serve concurrent requests.
type Checker struct {
	opts  options.CheckerOptions
	index *vocab.Index
	dict  *customdict.CustomDict // optional persistent store for custom words

	tokenRe *regexp.Regexp

	customMu    sync.RWMutex
	customWords map[string]struct{}

	candCache sync.Map // word -> []RankedCandidate

	docMu sync.RWMutex
	docs  map[string]*Document

	stats *stats
}

// New builds a Checker over the given index. dict may be nil; when set,
// previously learned custom words are loaded from it. Options default
// to the full Telugu block and an edit budget of 2.
func New(ctx context.Context, index *vocab.Index, dict *customdict.CustomDict, opt ...options.Options) (*Checker, error) {
	opts := options.DefaultOptions
	for _, o := range opt {
		o.Apply(&opts)
	}
	if opts.MaxEditDistance < 1 {
		return nil, errors.New("checker: max edit distance must be at least 1")
	}
	if opts.MaxCandidates < 1 {
		return nil, errors.New("checker: max candidates must be at least 1")
	}
	if opts.TwoEditCandidateCap < 1 {
		return nil, errors.New("checker: two-edit candidate cap must be at least 1")
	}
	if opts.AlphabetLo > opts.AlphabetHi {
		return nil, errors.New("checker: invalid alphabet range")
	}

	// Words are maximal runs of alphabet runes; everything else is a
	// separator and is skipped, never an error.
	re, err := regexp.Compile(fmt.Sprintf(`[\x{%04X}-\x{%04X}]+`, opts.AlphabetLo, opts.AlphabetHi))
	if err != nil {
		return nil, fmt.Errorf("checker: token pattern: %w", err)
	}

	c := &Checker{
		opts:        opts,
		index:       index,
		dict:        dict,
		tokenRe:     re,
		customWords: make(map[string]struct{}),
		docs:        make(map[string]*Document),
		stats:       newStats(),
	}
	if dict != nil {
		words, err := dict.All(ctx)
		if err != nil {
			slog.Warn("could not load custom words", "err", err)
		} else {
			for _, w := range words {
				c.customWords[w] = struct{}{}
			}
		}
	}
	return c, nil
}

// IsCorrect reports whether word is spelled correctly: membership in
// the vocabulary index or the custom overlay, regardless of frequency.
func (c *Checker) IsCorrect(word string) bool {
	if c.index.Contains(word) {
		return true
	}
	c.customMu.RLock()
	_, ok := c.customWords[word]
	c.customMu.RUnlock()
	return ok
}

// Candidates returns up to maxCandidates ranked corrections for word,
// or an empty list when the word is correct or nothing lies within the
// edit budget. Results are memoized per word for the process lifetime;
// maxCandidates values above the configured maximum return the cached
// list as-is.
func (c *Checker) Candidates(word string, maxCandidates int) []RankedCandidate {
	if word == "" || c.IsCorrect(word) {
		return []RankedCandidate{}
	}
	ranked := c.lookupCandidates(word)
	if maxCandidates > 0 && len(ranked) > maxCandidates {
		ranked = ranked[:maxCandidates]
	}
	return ranked
}

// lookupCandidates consults the cache before generating and ranking.
func (c *Checker) lookupCandidates(word string) []RankedCandidate {
	if v, ok := c.candCache.Load(word); ok {
		return v.([]RankedCandidate)
	}
	ranked := c.rank(word, c.generateCandidates(word), c.opts.MaxCandidates)
	c.candCache.Store(word, ranked)
	return ranked
}

// CheckDocument tokenizes text, checks every word and stores the
// document under id, overwriting any prior document with the same id.
// Per-word failures never abort the document: a word with no candidates
// simply gets an empty list.
func (c *Checker) CheckDocument(id, text string) []WordCheckResult {
	spans := c.tokenRe.FindAllStringIndex(text, -1)
	words := make([]string, len(spans))
	results := make([]WordCheckResult, 0, len(spans))
	docSpans := make([][2]int, len(spans))

	for i, sp := range spans {
		word := text[sp[0]:sp[1]]
		words[i] = word
		docSpans[i] = [2]int{sp[0], sp[1]}

		// Tokens below the length threshold are never flagged.
		tooShort := c.opts.MinWordLength > 1 && len([]rune(word)) < c.opts.MinWordLength

		if tooShort || c.IsCorrect(word) {
			c.stats.wordChecked(true)
			results = append(results, WordCheckResult{Word: word, IsCorrect: true, Candidates: []RankedCandidate{}})
			continue
		}

		c.stats.wordChecked(false)
		ranked := c.lookupCandidates(word)
		if len(ranked) > 0 {
			c.stats.candidateOutcome(true, ranked[0].Operations)
		} else {
			c.stats.candidateOutcome(false, nil)
		}
		results = append(results, WordCheckResult{Word: word, IsCorrect: false, Candidates: ranked})
	}

	doc := &Document{
		ID:        id,
		Text:      text,
		Words:     words,
		Results:   results,
		State:     StateChecked,
		CheckedAt: time.Now().UTC(),
		spans:     docSpans,
	}

	c.docMu.Lock()
	c.docs[id] = doc
	c.docMu.Unlock()
	c.stats.documentProcessed()

	return results
}

// CorrectDocument replaces every misspelled word of a checked document
// with its top-ranked candidate and returns the reconstructed text.
// Words without candidates are left unchanged. The document must exist
// and be in checked state.
func (c *Checker) CorrectDocument(id string) (string, error) {
	c.docMu.Lock()
	defer c.docMu.Unlock()

	doc, ok := c.docs[id]
	if !ok || doc.State != StateChecked {
		return "", fmt.Errorf("%w: %q", ErrDocumentNotFound, id)
	}

	corrected, changed := renderCorrected(doc)
	doc.State = StateCorrected
	doc.Corrected = corrected
	c.stats.correctionsApplied(changed)
	return corrected, nil
}

// renderCorrected splices top candidates into the original text using
// the recorded token spans. It is pure: no state or counters change.
func renderCorrected(doc *Document) (string, uint64) {
	var b strings.Builder
	b.Grow(len(doc.Text))
	var changed uint64
	pos := 0
	for i, res := range doc.Results {
		sp := doc.spans[i]
		b.WriteString(doc.Text[pos:sp[0]])
		replacement := res.Word
		if !res.IsCorrect && len(res.Candidates) > 0 {
			replacement = res.Candidates[0].Word
		}
		if replacement != res.Word {
			changed++
		}
		b.WriteString(replacement)
		pos = sp[1]
	}
	b.WriteString(doc.Text[pos:])
	return b.String(), changed
}

// ExportDocument is a pure read of a stored document into a structured
// record; the corrected text is rendered without touching the state
// machine or the counters.
func (c *Checker) ExportDocument(id string) (ExportRecord, error) {
	c.docMu.RLock()
	defer c.docMu.RUnlock()

	doc, ok := c.docs[id]
	if !ok {
		return ExportRecord{}, fmt.Errorf("%w: %q", ErrDocumentNotFound, id)
	}

	corrected := doc.Corrected
	if doc.State != StateCorrected {
		corrected, _ = renderCorrected(doc)
	}

	misspelled := 0
	for _, res := range doc.Results {
		if !res.IsCorrect {
			misspelled++
		}
	}
	accuracy := 0.0
	if len(doc.Results) > 0 {
		accuracy = float64(len(doc.Results)-misspelled) / float64(len(doc.Results)) * 100
	}

	return ExportRecord{
		DocumentID:    doc.ID,
		CheckedAt:     doc.CheckedAt,
		OriginalText:  doc.Text,
		CorrectedText: corrected,
		State:         doc.State.String(),
		Summary: DocumentSummary{
			WordCount:       len(doc.Results),
			MisspelledCount: misspelled,
			Accuracy:        accuracy,
		},
		Results: doc.Results,
	}, nil
}

// AddCustomWord marks word as correctly spelled for this and future
// sessions (when a persistent store is configured). Cached candidate
// lists may reference or omit the word, so the cache is dropped.
func (c *Checker) AddCustomWord(ctx context.Context, word string) error {
	if word == "" {
		return errors.New("checker: empty word")
	}
	if c.dict != nil {
		if err := c.dict.Add(ctx, word); err != nil {
			return err
		}
	}
	c.customMu.Lock()
	c.customWords[word] = struct{}{}
	c.customMu.Unlock()
	c.invalidateCandidates()
	return nil
}

// RemoveCustomWord forgets a previously added custom word.
func (c *Checker) RemoveCustomWord(ctx context.Context, word string) error {
	if c.dict != nil {
		if err := c.dict.Remove(ctx, word); err != nil {
			return err
		}
	}
	c.customMu.Lock()
	delete(c.customWords, word)
	c.customMu.Unlock()
	c.invalidateCandidates()
	return nil
}

func (c *Checker) invalidateCandidates() {
	c.candCache.Range(func(key, _ any) bool {
		c.candCache.Delete(key)
		return true
	})
}

// ClearDocuments drops the document table and the candidate cache; the
// vocabulary index is untouched.
func (c *Checker) ClearDocuments() {
	c.docMu.Lock()
	c.docs = make(map[string]*Document)
	c.docMu.Unlock()
	c.invalidateCandidates()
}

// DocumentCount reports how many documents are currently stored.
func (c *Checker) DocumentCount() int {
	c.docMu.RLock()
	defer c.docMu.RUnlock()
	return len(c.docs)
}

// Stats returns a snapshot of the process-lifetime counters.
func (c *Checker) Stats() Statistics {
	return c.stats.snapshot()
}
