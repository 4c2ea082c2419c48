package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// FileStore keeps the whole state as one YAML document. Every save rewrites
// the file through a temp file and rename, so a crash leaves either the old
// or the new snapshot on disk.
type FileStore struct {
	path string

	mu     sync.Mutex
	snap   *snapshot // nil until first read
	closed bool
}

// NewFileStore returns a store backed by path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) LoadState(ctx context.Context) (model.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return model.State{}, ErrClosed
	}
	if err := f.ensureLoaded(); err != nil {
		return model.State{}, err
	}
	return f.snap.state(), nil
}

func (f *FileStore) SaveState(ctx context.Context, patch model.StatePatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if err := f.ensureLoaded(); err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}

	next := snapshotOf(f.snap.state())
	next.apply(patch)
	if err := f.write(next.state()); err != nil {
		return err
	}
	f.snap = next
	return nil
}

func (f *FileStore) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *FileStore) ensureLoaded() error {
	if f.snap != nil {
		return nil
	}
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.snap = newSnapshot()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read state file %s: %w", f.path, err)
	}
	var st model.State
	if err := yaml.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptState, f.path, err)
	}
	f.snap = snapshotOf(st)
	return nil
}

func (f *FileStore) write(st model.State) error {
	raw, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
