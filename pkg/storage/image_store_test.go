package storage

import (
	"os"
	"testing"
)

func TestImageStoreSaveUsesUniquePaths(t *testing.T) {
	store := NewImageStore(t.TempDir())

	first, err := store.Save([]byte("one"))
	if err != nil {
		t.Fatalf("saving first image: %v", err)
	}
	second, err := store.Save([]byte("two"))
	if err != nil {
		t.Fatalf("saving second image: %v", err)
	}

	if first == second {
		t.Fatalf("two saves produced the same path: %s", first)
	}

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("reading first image back: %v", err)
	}
	if string(data) != "one" {
		t.Errorf("first image holds %q, want %q", data, "one")
	}
}

func TestImageStoreRemove(t *testing.T) {
	store := NewImageStore(t.TempDir())

	path, err := store.Save([]byte("data"))
	if err != nil {
		t.Fatalf("saving image: %v", err)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("removing image: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after Remove")
	}

	// Cleanup runs on every pipeline exit path; a second remove must not fail.
	if err := store.Remove(path); err != nil {
		t.Errorf("removing an already-removed file: %v", err)
	}
}

func TestImageStoreCreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/images"
	store := NewImageStore(dir)

	if _, err := store.Save([]byte("data")); err != nil {
		t.Fatalf("saving into missing directory: %v", err)
	}
}
