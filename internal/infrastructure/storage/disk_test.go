package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	store.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return store
}

func TestDiskStore_Save(t *testing.T) {
	store := newTestStore(t)

	path, size, err := store.Save("u1", ".xlsx", strings.NewReader("workbook"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "u1_1700000000123.xlsx" {
		t.Fatalf("unexpected name %s", filepath.Base(path))
	}
	if size != 8 {
		t.Fatalf("expected size 8, got %d", size)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "workbook" {
		t.Fatalf("content mismatch: %q, %v", data, err)
	}

	t.Run("same millisecond gets next name", func(t *testing.T) {
		second, _, err := store.Save("u1", ".xlsx", strings.NewReader("other"))
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if filepath.Base(second) != "u1_1700000000124.xlsx" {
			t.Fatalf("unexpected name %s", filepath.Base(second))
		}
	})
}

func TestDiskStore_StageRestoreRemove(t *testing.T) {
	store := newTestStore(t)
	path, _, _ := store.Save("u1", ".xls", strings.NewReader("x"))

	staged, err := store.Stage(path)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if staged != path+".deleting" {
		t.Fatalf("unexpected staged path %s", staged)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("original must be gone after staging")
	}

	if err := store.Restore(staged, path); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("original must be back: %v", err)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist on second remove, got %v", err)
	}
}

func TestDiskStore_StageMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Stage(filepath.Join(store.Dir(), "gone.xlsx"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}
