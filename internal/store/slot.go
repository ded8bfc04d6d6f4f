package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Slot is one named durable storage location holding the whole serialized
// collection. Read reports found=false when the slot has never been
// written.
type Slot interface {
	Read(ctx context.Context) (data []byte, found bool, err error)
	Write(ctx context.Context, data []byte) error
}

// FileSlot keeps the collection in a single JSON file.
type FileSlot struct {
	path string
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

func (s *FileSlot) Read(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", s.path, err)
	}
	return data, true, nil
}

// Write replaces the slot contents via a temp file and rename, so a
// reader never observes a partial document.
func (s *FileSlot) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".jobtrail-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp slot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace slot %s: %w", s.path, err)
	}
	return nil
}
