package vocab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Open loads the index from the snapshot store if one is present and
// valid, otherwise builds it from the vocabulary source file and saves
// a fresh snapshot. A corrupt snapshot triggers a rebuild rather than a
// hard failure; only losing both the snapshot and the source is fatal.
func Open(ctx context.Context, store Store, vocabPath string) (*Index, error) {
	var loadErr error
	if store != nil {
		idx, err := store.Load(ctx)
		if err == nil {
			slog.Info("vocabulary index loaded from snapshot", "words", idx.Len())
			return idx, nil
		}
		loadErr = err
		if errors.Is(err, ErrCorruptIndex) {
			slog.Warn("snapshot failed validation, rebuilding from source", "err", err)
		} else {
			slog.Debug("no usable snapshot, building from source", "err", err)
		}
	}

	f, err := os.Open(vocabPath)
	if err != nil {
		if loadErr != nil {
			return nil, fmt.Errorf("%w: snapshot: %v, source %s: %v", ErrDataUnavailable, loadErr, vocabPath, err)
		}
		return nil, fmt.Errorf("%w: source %s: %v", ErrDataUnavailable, vocabPath, err)
	}
	defer f.Close()

	idx, err := Build(f)
	if err != nil {
		return nil, fmt.Errorf("vocab: build from %s: %w", vocabPath, err)
	}
	slog.Info("vocabulary index built", "source", vocabPath, "words", idx.Len())

	if store != nil {
		if err := store.Save(ctx, idx); err != nil {
			// A failed save only costs a rebuild on next start.
			slog.Warn("failed to save index snapshot", "err", err)
		}
	}
	return idx, nil
}
