package repositories

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/LuSP19/space-tg/domain"
)

// FileStore is the flat directory shared by every source and the drainer.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Ensure creates the directory if needed. Parents are not created.
func (s *FileStore) Ensure() error {
	err := os.Mkdir(s.dir, 0o755)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrExist) {
		info, statErr := os.Stat(s.dir)
		if statErr == nil && info.IsDir() {
			return nil
		}
	}
	return fmt.Errorf("%w: failed to create directory %s: %v", domain.ErrIO, s.dir, err)
}

func (s *FileStore) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Save writes data to dir/filename, replacing any previous content.
func (s *FileStore) Save(filename string, data []byte) (string, error) {
	path := s.Path(filename)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create %s: %v", domain.ErrIO, path, err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return "", fmt.Errorf("%w: failed to write %s: %v", domain.ErrIO, path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("%w: failed to close %s: %v", domain.ErrIO, path, err)
	}
	return path, nil
}

// List returns the names of regular files in the directory, sorted. Symlinks
// count when they resolve to a regular file.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list %s: %v", domain.ErrIO, s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(s.Path(entry.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		} else if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) Open(filename string) (io.ReadCloser, error) {
	path := s.Path(filename)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", domain.ErrIO, path, err)
	}
	return file, nil
}
