package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestJSONStore_WriteThenRead(t *testing.T) {
	s := NewJSONStore(t.TempDir())
	in := map[string]any{"players": []any{map[string]any{"id": "1", "fullName": "Josh Allen"}}}

	if err := s.WriteJSON("week1/players.json", in); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !s.Exists("week1/players.json") {
		t.Fatal("Exists = false after write")
	}
	if _, err := os.Stat(s.Path("week1/players.json.tmp")); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}

	var out struct {
		Players []struct {
			FullName string `json:"fullName"`
		} `json:"players"`
	}
	if err := s.ReadJSON("week1/players.json", &out); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(out.Players) != 1 || out.Players[0].FullName != "Josh Allen" {
		t.Errorf("read back %+v", out)
	}
}

func TestJSONStore_ReadErrors(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONStore(dir)

	var v map[string]any
	if err := s.ReadJSON("missing.json", &v); !os.IsNotExist(err) {
		t.Errorf("missing file err = %v, want not-exist", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := s.ReadJSON("bad.json", &v)
	if err == nil || !strings.Contains(err.Error(), "decode bad.json") {
		t.Errorf("bad JSON err = %v", err)
	}
}
