// Package uploads stores uploaded files on local disk.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidFilename is returned for names that are empty or resolve to a directory.
	ErrInvalidFilename = errors.New("invalid filename")
	// ErrTooLarge is returned when an upload exceeds the store's size limit.
	ErrTooLarge = errors.New("upload too large")
	// ErrOutsideRoot is returned when a path does not belong to the store.
	ErrOutsideRoot = errors.New("path escapes upload root")
)

// Store writes uploads under a single root directory as "{id}_{filename}".
type Store struct {
	root     string
	maxBytes int64
}

// NewStore creates the root directory if needed. maxBytes <= 0 disables the
// size limit.
func NewStore(root string, maxBytes int64) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{root: abs, maxBytes: maxBytes}, nil
}

// Root returns the absolute upload directory.
func (s *Store) Root() string {
	return s.root
}

// MaxBytes returns the size limit, or 0 when unlimited.
func (s *Store) MaxBytes() int64 {
	if s.maxBytes < 0 {
		return 0
	}
	return s.maxBytes
}

// SanitizeFilename reduces a client-supplied name to its base name. Both
// slash styles are treated as separators.
func SanitizeFilename(raw string) (string, error) {
	name := strings.ReplaceAll(strings.TrimSpace(raw), "\\", "/")
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: contains NUL byte", ErrInvalidFilename)
	}

	name = strings.TrimSpace(path.Base(path.Clean("/" + name)))
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, raw)
	}
	return name, nil
}

// Save copies r to "{id}_{filename}" under the root and returns the file's
// path. A partially written file is removed on error.
func (s *Store) Save(id, filename string, r io.Reader) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("%w: bad id %q", ErrInvalidFilename, id)
	}
	name, err := SanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	dst, err := s.buildPath(id + "_" + name)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}

	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write upload: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to close upload: %w", closeErr)
	case s.maxBytes > 0 && n > s.maxBytes:
		_ = os.Remove(dst)
		return "", fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.maxBytes)
	}

	return dst, nil
}

// Remove deletes a file previously returned by Save. Missing files are not
// an error.
func (s *Store) Remove(p string) error {
	abs, err := filepath.Abs(p)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", p, err)
	}
	if !strings.HasPrefix(abs, s.root+string(os.PathSeparator)) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, p)
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

func (s *Store) buildPath(name string) (string, error) {
	abs := filepath.Join(s.root, name)
	if !strings.HasPrefix(abs, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, name)
	}
	return abs, nil
}
