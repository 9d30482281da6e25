package vocab

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrDataUnavailable means neither a snapshot nor the vocabulary
	// source could be read; the index cannot be constructed.
	ErrDataUnavailable = errors.New("vocab: no snapshot and no vocabulary source available")
	// ErrCorruptIndex means a snapshot failed its schema or version
	// check. Recovered by rebuilding from the vocabulary source.
	ErrCorruptIndex = errors.New("vocab: corrupt index snapshot")
)

// Index is an immutable word -> frequency mapping. It is built once and
// never mutated afterwards, so it is safe to share across goroutines
// without locking.
type Index struct {
	words   map[string]uint64
	maxFreq uint64
}

// NewIndex builds an Index over the given frequency map. The map is
// taken over by the index and must not be modified by the caller.
func NewIndex(words map[string]uint64) *Index {
	if words == nil {
		words = make(map[string]uint64)
	}
	var maxFreq uint64 = 1
	for _, f := range words {
		if f > maxFreq {
			maxFreq = f
		}
	}
	return &Index{words: words, maxFreq: maxFreq}
}

// Build reads a newline-delimited vocabulary. A line is either a bare
// word, counted once per occurrence, or "word count" / "word<TAB>count"
// with an explicit frequency which accumulates.
func Build(r io.Reader) (*Index, error) {
	words := make(map[string]uint64)
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		word := fields[0]
		var count uint64 = 1
		if len(fields) >= 2 {
			if c, err := strconv.ParseUint(fields[1], 10, 64); err == nil {
				count = c
			}
		}
		words[word] += count
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return NewIndex(words), nil
}

// Contains reports whether word is in the vocabulary. Membership, not
// frequency, determines correctness: a word with frequency 0 is still
// correctly spelled.
func (idx *Index) Contains(word string) bool {
	_, ok := idx.words[word]
	return ok
}

// FrequencyOf returns the occurrence count of word, 0 if absent.
func (idx *Index) FrequencyOf(word string) uint64 {
	return idx.words[word]
}

// MaxFrequency is the largest frequency in the index, at least 1.
func (idx *Index) MaxFrequency() uint64 {
	return idx.maxFreq
}

// Len is the number of distinct words.
func (idx *Index) Len() int {
	return len(idx.words)
}

// TotalOccurrences sums all frequencies.
func (idx *Index) TotalOccurrences() uint64 {
	var total uint64
	for _, f := range idx.words {
		total += f
	}
	return total
}
