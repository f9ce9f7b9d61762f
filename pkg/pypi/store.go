package pypi

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pyscout/pyscout/pkg/errors"
)

// Entry is one cached registry outcome. Found=false records a definitive
// 404 so the name is never re-queried; Found=true may carry slim metadata.
type Entry struct {
	Found bool
	Meta  *Metadata
}

// MarshalJSON encodes a negative entry as the bare literal false and a
// positive one as its slim metadata object, keeping the persisted file
// compact and diffable.
func (e Entry) MarshalJSON() ([]byte, error) {
	if !e.Found {
		return []byte("false"), nil
	}
	if e.Meta == nil {
		return []byte("true"), nil
	}
	return json.Marshal(e.Meta)
}

// UnmarshalJSON accepts the three shapes a cache file may carry: a bare
// boolean, a slim metadata object, or the legacy full payload wrapped in
// an "info" object. Anything else is an error so the loader can drop the
// entry without discarding the rest of the file.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var found bool
	if err := json.Unmarshal(data, &found); err == nil {
		*e = Entry{Found: found}
		return nil
	}

	var wrapped apiResponse
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Info.Name != "" {
		*e = Entry{Found: true, Meta: &Metadata{
			Name:         wrapped.Info.Name,
			Version:      wrapped.Info.Version,
			RequiresDist: wrapped.Info.RequiresDist,
		}}
		return nil
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return err
	}
	if meta.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache entry missing package name")
	}
	*e = Entry{Found: true, Meta: &meta}
	return nil
}

// Store persists registry lookups between runs.
type Store interface {
	// Load returns every valid persisted entry. Implementations drop
	// corrupt entries individually rather than failing the whole load.
	Load(ctx context.Context) (map[string]Entry, error)

	// Flush replaces the persisted set with the given entries.
	Flush(ctx context.Context, entries map[string]Entry) error
}

// FileStore persists entries as a single JSON object file. The file is
// written with owner-only permissions since cache paths can leak project
// layout information.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the given file path. The parent
// directory is created lazily on first flush.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultCachePath returns the conventional per-user cache file location.
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolving user cache directory")
	}
	return filepath.Join(dir, "pyscout", "registry.json"), nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(_ context.Context) (map[string]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "reading registry cache")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// A corrupt file is discarded wholesale; it will be rebuilt.
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "registry cache is corrupt")
	}

	entries := make(map[string]Entry, len(raw))
	for name, msg := range raw {
		if _, ok := SanitizeName(name); !ok {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(msg, &entry); err != nil {
			continue
		}
		entries[name] = entry
	}
	return entries, nil
}

func (s *FileStore) Flush(_ context.Context, entries map[string]Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "creating cache directory")
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding registry cache")
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "writing registry cache")
	}
	return nil
}

// Clear removes the persisted cache file. Missing files are not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "removing registry cache")
	}
	return nil
}
