package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lineagekit/lineage/pkg/errors"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	data := `{
		"people": [
			{"id": "a", "givenName": "Ada", "surname": "Hill"},
			{"id": "b", "givenName": "Ben", "surname": "Hill"}
		],
		"relationships": [
			{"id": "r1", "type": "parent_child", "person1": "a", "person2": "b"}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewSource(path)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	if s.Name() != "local" {
		t.Errorf("Name() = %q", s.Name())
	}

	g, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(g.People) != 2 || len(g.Relationships) != 1 {
		t.Errorf("graph = %d people, %d relationships", len(g.People), len(g.Relationships))
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := NewSource(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	_, err = s.Load(context.Background())
	if err == nil {
		t.Fatal("Load() = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{oops"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewSource(path)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	_, err = s.Load(context.Background())
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestNewSourceRejectsTraversal(t *testing.T) {
	if _, err := NewSource("../outside.json"); err == nil {
		t.Error("NewSource should reject traversal paths")
	}
}
