package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const (
	stagedSuffix = ".deleting"
	maxNameTries = 16
)

// DiskStore keeps uploaded workbooks as plain files in one directory.
type DiskStore struct {
	dir string
	now func() time.Time
}

// NewDiskStore creates dir when it does not exist yet.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &DiskStore{dir: dir, now: time.Now}, nil
}

// Dir returns the upload directory.
func (s *DiskStore) Dir() string { return s.dir }

// Save writes r to {dir}/{ownerID}_{unixMillis}{ext}. Two uploads by the same
// owner in the same millisecond get consecutive timestamps.
func (s *DiskStore) Save(ownerID, ext string, r io.Reader) (string, int64, error) {
	ts := s.now().UnixMilli()

	var (
		f    *os.File
		path string
		err  error
	)
	for i := 0; i < maxNameTries; i++ {
		path = filepath.Join(s.dir, fmt.Sprintf("%s_%d%s", ownerID, ts+int64(i), ext))
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if !errors.Is(err, fs.ErrExist) {
			break
		}
	}
	if err != nil {
		return "", 0, fmt.Errorf("creating file: %w", err)
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("writing file: %w", err)
	}
	return path, size, nil
}

// Stage renames path to path.deleting. A missing path yields an error
// matching fs.ErrNotExist.
func (s *DiskStore) Stage(path string) (string, error) {
	staged := path + stagedSuffix
	if err := os.Rename(path, staged); err != nil {
		return "", fmt.Errorf("staging %s: %w", filepath.Base(path), err)
	}
	return staged, nil
}

func (s *DiskStore) Restore(staged, path string) error {
	if err := os.Rename(staged, path); err != nil {
		return fmt.Errorf("restoring %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *DiskStore) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", filepath.Base(path), err)
	}
	return nil
}
