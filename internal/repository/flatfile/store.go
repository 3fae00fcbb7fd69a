// Package flatfile implements the Filmvault repositories over delimited
// text files, one record per line. It is the only storage backend: the file
// formats are the system's external interface, shared with every tool that
// has ever written them, so the codecs must keep decoding every schema
// generation that exists on disk.
package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Codec maps one record to and from a single line of text.
type Codec[T any] interface {
	// Encode renders record in the newest schema for its entity kind.
	// Rewriting a file therefore silently upgrades older rows to the
	// latest schema (migration-on-write).
	Encode(record T) string

	// Decode parses line under any known schema generation for the entity
	// kind. ok is false for lines matching no generation; such lines are
	// skipped by scans, never fatal.
	Decode(line string) (record T, ok bool)
}

// Store is a generic scan/append/rewrite engine over a single text file.
//
// A missing file is an empty store: the ledger and user files do not exist
// before the first write. There is no record-level update; every mutation
// rewrites the whole file through RewriteAll. Fields are not escaped, so a
// field containing the entity's delimiter corrupts its row on the next
// decode - the same contract the historical files were written under.
type Store[T any] struct {
	path  string
	codec Codec[T]
}

// NewStore creates a Store over the file at path using codec.
func NewStore[T any](path string, codec Codec[T]) *Store[T] {
	return &Store[T]{path: path, codec: codec}
}

// Path returns the backing file path.
func (s *Store[T]) Path() string {
	return s.path
}

// ScanAll decodes every line of the file in order. Blank lines and lines
// that decode under no known schema are skipped. A missing file yields an
// empty result, not an error.
func (s *Store[T]) ScanAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	var records []T
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, ok := s.codec.Decode(line)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	return records, nil
}

// Append encodes record and writes it as one new line at the end of the
// file, creating the file if needed. On error nothing is assumed persisted.
func (s *Store[T]) Append(ctx context.Context, record T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", s.path, err)
	}

	if _, err := f.WriteString(s.codec.Encode(record) + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", s.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.path, err)
	}
	return nil
}

// RewriteAll replaces the file contents with the encoded records, in the
// given order. The new content is written to a temporary file in the same
// directory and moved into place with an atomic rename, so a crash mid-write
// leaves the previous file intact.
func (s *Store[T]) RewriteAll(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, record := range records {
		if _, err := w.WriteString(s.codec.Encode(record) + "\n"); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to write %s: %w", tmpPath, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Find returns the first record matching pred, in file order.
func (s *Store[T]) Find(ctx context.Context, pred func(T) bool) (T, bool, error) {
	var zero T
	records, err := s.ScanAll(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, record := range records {
		if pred(record) {
			return record, true, nil
		}
	}
	return zero, false, nil
}

// Filter returns all records matching pred, preserving file order.
func (s *Store[T]) Filter(ctx context.Context, pred func(T) bool) ([]T, error) {
	records, err := s.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	var matched []T
	for _, record := range records {
		if pred(record) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}
