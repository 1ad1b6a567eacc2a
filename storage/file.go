package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore keeps one JSON file per slot under a directory.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	return &FileStore{dir: dir, logger: logger}
}

func (f *FileStore) Save(_ context.Context, slot string, data []byte) error {
	raw, err := wrap(data)
	if err != nil {
		return fmt.Errorf("wrapping save: %w", err)
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	path := filepath.Join(f.dir, slot+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	f.logger.Debug("save written", "slot", slot, "path", path, "bytes", len(raw))
	return nil
}

func (f *FileStore) Load(_ context.Context, slot string) ([]byte, error) {
	path := filepath.Join(f.dir, slot+".json")
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}
	return unwrap(raw), nil
}

func (f *FileStore) List(_ context.Context) ([]SlotInfo, error) {
	entries, err := os.ReadDir(f.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading save directory: %w", err)
	}

	var slots []SlotInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		slot := strings.TrimSuffix(e.Name(), ".json")
		info := SlotInfo{Slot: slot}
		if raw, err := os.ReadFile(filepath.Join(f.dir, e.Name())); err == nil {
			var env Envelope
			if json.Unmarshal(raw, &env) == nil {
				info.ID = env.ID
				info.SavedAt = env.SavedAt
			}
		}
		slots = append(slots, info)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
	return slots, nil
}

func (f *FileStore) Close() error { return nil }
