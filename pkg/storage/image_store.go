package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const imageFilePerm = 0o644

// imageStore materializes downloaded photos on disk. Every saved image gets
// its own uuid-suffixed name, so concurrent runs sharing the directory never
// collide on a path.
type imageStore struct {
	dir string
}

func NewImageStore(dir string) *imageStore {
	return &imageStore{dir: dir}
}

func (s *imageStore) Save(data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("image-%s.jpg", uuid.NewString()))
	if err := os.WriteFile(path, data, imageFilePerm); err != nil {
		return "", fmt.Errorf("saving image file: %w", err)
	}

	slog.Debug("image saved", "path", path, "size", len(data))

	return path, nil
}

// Remove deletes a previously saved image. A path that is already gone is
// not an error; cleanup runs on every pipeline exit and must be repeatable.
func (s *imageStore) Remove(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing image file: %w", err)
	}

	slog.Debug("image removed", "path", path)

	return nil
}
