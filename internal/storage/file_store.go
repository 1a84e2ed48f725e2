// Package storage manages the on-disk file store for uploaded
// images.  Files are written under a configured directory with a
// generated, collision-resistant name; the resulting path is the
// durable reference persisted by the image repository, never the
// original client filename.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedExtensions is the upload allow-list.  Matching is on the
// lowercased filename extension only; the content itself is not
// inspected.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// FileStore saves and removes binary files under a single base
// directory.
type FileStore struct {
	dir string
}

// NewFileStore ensures the base directory exists and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Allowed reports whether the filename carries an allow-listed image
// extension.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save writes the content of src to a new file named
// "<random hex>_<sanitized original name>" and returns its path.  The
// partial file is removed when the copy fails.
func (s *FileStore) Save(src io.Reader, originalName string) (string, error) {
	name := strings.ReplaceAll(uuid.New().String(), "-", "") + "_" + sanitizeFilename(originalName)
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// Exists reports whether the file at path is present on disk.
func (s *FileStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Remove deletes the file at path.  A missing file is not an error;
// the record delete it accompanies must still succeed.
func (s *FileStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sanitizeFilename strips path separators and anything outside a
// conservative character set, so client-supplied names can never
// escape the upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || out == "." || out == ".." {
		out = "file"
	}
	return out
}
