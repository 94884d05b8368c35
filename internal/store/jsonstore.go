package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore reads and writes JSON documents under a root directory, e.g. the
// player snapshots produced by the data-fetch layer.
type JSONStore struct {
	Root string // e.g. "data/catalog"
}

func NewJSONStore(root string) *JSONStore {
	return &JSONStore{Root: root}
}

func (s *JSONStore) Path(rel string) string {
	return filepath.Join(s.Root, rel)
}

func (s *JSONStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

func (s *JSONStore) ReadRaw(rel string) ([]byte, error) {
	return os.ReadFile(s.Path(rel))
}

// ReadJSON decodes the document at rel into v.
func (s *JSONStore) ReadJSON(rel string, v any) error {
	b, err := s.ReadRaw(rel)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", rel, err)
	}
	return nil
}

// WriteJSON writes v indented, via a temp file and rename so readers never
// observe a partial snapshot.
func (s *JSONStore) WriteJSON(rel string, v any) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
