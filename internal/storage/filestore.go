// Package storage implements the attachment blob boundary on local disk.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type LocalFileStore struct {
	root string
}

func NewLocalFileStore(root string) (*LocalFileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create file store root: %w", err)
	}
	return &LocalFileStore{root: root}, nil
}

// Save writes data under a generated name and returns the path relative
// to the store root.
func (s *LocalFileStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := uuid.NewString() + "_" + filepath.Base(name)
	full := filepath.Join(s.root, rel)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}
	return rel, nil
}

func (s *LocalFileStore) Retrieve(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

func (s *LocalFileStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve rejects paths escaping the store root.
func (s *LocalFileStore) resolve(path string) (string, error) {
	full := filepath.Join(s.root, filepath.Clean("/"+path))
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid attachment path %q", path)
	}
	return full, nil
}
