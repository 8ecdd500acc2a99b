package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	seenFileName = "seen.json"
	metaFileName = "meta.json"
)

// FileStore persists state as two JSON files in a directory owned by this
// process instance. Writes go through a temp file and rename so readers never
// observe a partial payload.
type FileStore struct {
	dir      string
	seenPath string
	metaPath string
}

// NewFileStore creates the state directory if needed and returns a store
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state dir %s: %w", dir, err)
	}
	return &FileStore{
		dir:      dir,
		seenPath: filepath.Join(dir, seenFileName),
		metaPath: filepath.Join(dir, metaFileName),
	}, nil
}

// LoadMeta returns the stored validators. Missing or malformed payloads
// downgrade to zero Meta; the worst case is one unconditional fetch.
func (f *FileStore) LoadMeta() (Meta, error) {
	data, err := os.ReadFile(f.metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Meta{}, nil
		}
		return Meta{}, fmt.Errorf("failed to read %s: %w", f.metaPath, err)
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return Meta{}, nil
	}
	return meta, nil
}

// SaveMeta overwrites the stored validators
func (f *FileStore) SaveMeta(meta Meta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode meta: %w", err)
	}
	return f.writeAtomic(f.metaPath, data)
}

type seenPayload struct {
	Offers []string `json:"offers"`
}

// LoadSeen returns the stored seen-set. A missing file is a legitimately
// empty set. A file that is not valid JSON yields ErrSeenCorrupted. Valid
// JSON whose offers field is not a sequence of strings is treated as empty.
func (f *FileStore) LoadSeen() (*SeenSet, error) {
	data, err := os.ReadFile(f.seenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSeenSet(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", f.seenPath, err)
	}

	var payload seenPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return NewSeenSet(), nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSeenCorrupted, f.seenPath, err)
	}
	return NewSeenSet(payload.Offers...), nil
}

// SaveSeen persists the seen-set in insertion order
func (f *FileStore) SaveSeen(seen *SeenSet) error {
	ids := seen.IDs()
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(seenPayload{Offers: ids})
	if err != nil {
		return fmt.Errorf("failed to encode seen-set: %w", err)
	}
	return f.writeAtomic(f.seenPath, data)
}

// writeAtomic writes data to a temp file in the same directory and renames it
// over the target path.
func (f *FileStore) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename %s to %s: %w", tmpName, path, err)
	}
	return nil
}
