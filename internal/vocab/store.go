package vocab

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"
	"github.com/redis/go-redis/v9"
)

// Store persists the index snapshot in secondary storage.
type Store interface {
	Load(ctx context.Context) (*Index, error)
	Save(ctx context.Context, idx *Index) error
}

// FileStore keeps the snapshot as a single file on disk. Reads map the
// file instead of slurping it; writes go through a temp file and rename
// so a crash never leaves a truncated snapshot behind.
type FileStore struct {
	Path string
	// Source is recorded in the snapshot metadata.
	Source string
}

func (fs *FileStore) Load(_ context.Context) (*Index, error) {
	f, err := os.Open(fs.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: empty snapshot file", ErrCorruptIndex)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("vocab: mmap %s: %w", fs.Path, err)
	}
	defer m.Unmap()

	// gob copies into fresh maps, nothing aliases the mapping after
	// decode returns.
	return decodeSnapshot(m)
}

func (fs *FileStore) Save(_ context.Context, idx *Index) error {
	data, err := encodeSnapshot(idx, fs.Source)
	if err != nil {
		return err
	}
	dir := filepath.Dir(fs.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(fs.Path)+".tmp*")
	if err != nil {
		return fmt.Errorf("vocab: create snapshot temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("vocab: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("vocab: close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("vocab: rename snapshot: %w", err)
	}
	return nil
}

// RedisStore keeps the snapshot blob under a single Redis key.
type RedisStore struct {
	Client *redis.Client
	Key    string
	Source string
}

func (rs *RedisStore) Load(ctx context.Context) (*Index, error) {
	data, err := rs.Client.Get(ctx, rs.Key).Bytes()
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(data)
}

func (rs *RedisStore) Save(ctx context.Context, idx *Index) error {
	data, err := encodeSnapshot(idx, rs.Source)
	if err != nil {
		return err
	}
	return rs.Client.Set(ctx, rs.Key, data, 0).Err()
}
