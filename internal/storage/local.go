package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the static route under which locally stored files are served.
const URLPrefix = "/uploads/"

type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Store(ctx context.Context, r io.Reader, size int64, contentType, originalName string) (string, error) {
	// Randomized name so concurrent uploads of the same file never collide.
	name := uuid.NewString() + filepath.Ext(originalName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", err
	}

	return URLPrefix + name, nil
}

func (s *LocalStorage) Delete(ctx context.Context, ref string) error {
	name := strings.TrimPrefix(ref, URLPrefix)
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("invalid file reference %q", ref)
	}
	return os.Remove(filepath.Join(s.dir, name))
}

// Dir returns the directory files are written to, for the static file route.
func (s *LocalStorage) Dir() string {
	return s.dir
}
