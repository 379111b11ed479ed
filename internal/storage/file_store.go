package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the document as a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore ensures the parent directory exists.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory for %s: %w", path, err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string { return s.path }

// Load returns nil, nil when the file does not exist yet.
func (s *FileStore) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}
	return UnmarshalDocument(data)
}

// Save writes to a temp file and renames it over the target.
func (s *FileStore) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil {
		return errors.New("document save: nil document")
	}
	data, err := MarshalDocument(doc)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace document file: %w", err)
	}
	return nil
}

// DefaultFilePath returns the default JSON document location in the user's home directory.
func DefaultFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".prep.json"), nil
}
