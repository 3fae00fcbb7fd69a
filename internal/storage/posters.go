// Package storage provides filesystem storage for poster images.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PosterStore copies poster images into a fixed directory. Files are keyed
// by their original filename; a second copy-in with the same filename
// overwrites the first.
type PosterStore struct {
	dir string
}

// NewPosterStore creates a PosterStore rooted at dir. The directory is
// created on first use, not here.
func NewPosterStore(dir string) *PosterStore {
	return &PosterStore{dir: dir}
}

// Dir returns the poster directory.
func (p *PosterStore) Dir() string {
	return p.dir
}

// CopyIn copies the image at sourcePath into the poster directory under its
// original filename and returns the destination path. An empty sourcePath
// returns an empty destination and no error.
func (p *PosterStore) CopyIn(sourcePath string) (string, error) {
	if sourcePath == "" {
		return "", nil
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create poster directory %s: %w", p.dir, err)
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to open poster %s: %w", sourcePath, err)
	}
	defer src.Close()

	destPath := filepath.Join(p.dir, filepath.Base(sourcePath))
	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create poster %s: %w", destPath, err)
	}

	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		os.Remove(destPath)
		return "", fmt.Errorf("failed to copy poster to %s: %w", destPath, err)
	}
	if err := dest.Close(); err != nil {
		return "", fmt.Errorf("failed to close poster %s: %w", destPath, err)
	}

	return destPath, nil
}
