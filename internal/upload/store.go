package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// publicPrefix is the path segment the HTTP layer serves the upload
	// root under; stored paths embed it so they append directly onto
	// the public base URL.
	publicPrefix = "uploads"
	coverSubdir  = "blogs/covers"
)

// Store writes uploaded cover images under root/blogs/covers using
// random filenames, so concurrent uploads of identically named files
// never collide.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// SaveCover stores the uploaded file and returns its public-facing
// relative path, e.g. "uploads/blogs/covers/<uuid>-photo.png".
func (s *Store) SaveCover(file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(coverSubdir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir failed: %w", err)
	}

	name := uuid.NewString() + "-" + filepath.Base(file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create stored file failed: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write stored file failed: %w", err)
	}

	return path.Join(publicPrefix, coverSubdir, name), nil
}

// Remove deletes a previously stored file given the relative path that
// SaveCover returned. A missing file is not an error.
func (s *Store) Remove(relPath string) error {
	rel := strings.TrimPrefix(relPath, publicPrefix+"/")
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stored file failed: %w", err)
	}
	return nil
}
