package vocab

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"
)

// Snapshot blob layout: 4-byte magic, then a gob-encoded snapshot
// record. Anything that fails the magic or version check is treated as
// ErrCorruptIndex and rebuilt from the vocabulary source.
const (
	snapshotMagic   = "TGSP"
	snapshotVersion = 1
)

type snapshot struct {
	Version          int
	Words            map[string]uint64
	MaxFrequency     uint64
	TotalWords       int
	TotalOccurrences uint64
	Source           string
	CreatedAt        time.Time
}

func encodeSnapshot(idx *Index, source string) ([]byte, error) {
	snap := snapshot{
		Version:          snapshotVersion,
		Words:            idx.words,
		MaxFrequency:     idx.maxFreq,
		TotalWords:       idx.Len(),
		TotalOccurrences: idx.TotalOccurrences(),
		Source:           source,
		CreatedAt:        time.Now().UTC(),
	}
	var buf bytes.Buffer
	buf.WriteString(snapshotMagic)
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("vocab: encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeSnapshot(data []byte) (*Index, error) {
	if len(data) < len(snapshotMagic) || string(data[:len(snapshotMagic)]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptIndex)
	}
	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(data[len(snapshotMagic):])).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrCorruptIndex, snap.Version, snapshotVersion)
	}
	if snap.TotalWords != len(snap.Words) {
		return nil, fmt.Errorf("%w: word count mismatch", ErrCorruptIndex)
	}
	idx := NewIndex(snap.Words)
	if idx.maxFreq != snap.MaxFrequency {
		return nil, fmt.Errorf("%w: max frequency mismatch", ErrCorruptIndex)
	}
	return idx, nil
}
