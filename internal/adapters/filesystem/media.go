package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fonoteca/internal/ports"
)

// MediaStore implements ports.MediaStore on a directory
type MediaStore struct {
	dir string
}

// Ensure MediaStore implements ports.MediaStore
var _ ports.MediaStore = (*MediaStore)(nil)

// NewMediaStore creates a media store rooted at dir
func NewMediaStore(dir string) *MediaStore {
	return &MediaStore{dir: expandHome(dir)}
}

// Dir returns the root directory of the store
func (m *MediaStore) Dir() string {
	return m.dir
}

// Import copies src into the store. The file keeps its base name; a
// numeric suffix is added when that name is taken.
func (m *MediaStore) Import(src string) (string, error) {
	src = expandHome(src)

	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("audio file not found: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", src)
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	dst, err := m.freeName(filepath.Base(src))
	if err != nil {
		return "", err
	}

	if err := copyFile(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Remove deletes an imported file. Paths outside the store belong to
// someone else and are left alone.
func (m *MediaStore) Remove(path string) error {
	if !m.owns(path) {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

func (m *MediaStore) owns(path string) bool {
	rel, err := filepath.Rel(m.dir, path)
	if err != nil {
		return false
	}
	return rel != "." && !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)
}

// freeName finds an unused path for name, trying name, name-2, name-3...
func (m *MediaStore) freeName(name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := filepath.Join(m.dir, name)
	for n := 2; ; n++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}
		candidate = filepath.Join(m.dir, stem+"-"+strconv.Itoa(n)+ext)
	}
}

// copyFile writes src to a temp file next to dst and renames it into place,
// so a failed copy never leaves a partial file under the final name
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".import-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", dst, err)
	}
	return nil
}

// expandHome expands a leading ~ to the home directory
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
