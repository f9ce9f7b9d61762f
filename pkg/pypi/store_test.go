package pypi

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	store := NewFileStore(path)
	ctx := context.Background()

	entries := map[string]Entry{
		"requests": {Found: true, Meta: &Metadata{Name: "requests", Version: "2.32.0"}},
		"ghost":    {Found: false},
	}
	if err := store.Flush(ctx, entries); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load() returned %d entries, want 2", len(loaded))
	}
	if e := loaded["requests"]; !e.Found || e.Meta == nil || e.Meta.Version != "2.32.0" {
		t.Errorf("loaded[requests] = %+v", e)
	}
	if e := loaded["ghost"]; e.Found {
		t.Errorf("loaded[ghost].Found = true, want false")
	}
}

func TestFileStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions test")
	}
	path := filepath.Join(t.TempDir(), "registry.json")
	store := NewFileStore(path)

	if err := store.Flush(context.Background(), map[string]Entry{"x": {Found: false}}); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("cache file mode = %o, want 600", perm)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	entries, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Load() = %v, want empty", entries)
	}
}

func TestFileStoreDropsCorruptEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	content := `{
		"good": {"name": "good", "version": "1.0"},
		"legacy": {"info": {"name": "legacy", "version": "0.1"}},
		"negative": false,
		"broken": [1, 2, 3],
		"nameless": {"version": "1.0"},
		"../unsafe": true
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	entries, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Load() kept %d entries, want 3: %v", len(entries), entries)
	}
	if e := entries["good"]; e.Meta == nil || e.Meta.Name != "good" {
		t.Errorf("entries[good] = %+v", e)
	}
	if e := entries["legacy"]; e.Meta == nil || e.Meta.Version != "0.1" {
		t.Errorf("entries[legacy] = %+v", e)
	}
	if entries["negative"].Found {
		t.Error("entries[negative].Found = true, want false")
	}
}

func TestFileStoreCorruptFileDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Error("Load() of a corrupt file succeeded, want error")
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	store := NewFileStore(path)

	if err := store.Clear(); err != nil {
		t.Errorf("Clear() on missing file error = %v", err)
	}

	if err := store.Flush(context.Background(), map[string]Entry{"x": {Found: false}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cache file still present after Clear()")
	}
}
