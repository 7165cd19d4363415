package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.sqlite"), 2*time.Second)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return s
}

func TestInitSeedsArticleTypes(t *testing.T) {
	s := newTestStore(t)
	types, err := s.ListArticleTypes(context.Background())
	if err != nil {
		t.Fatalf("list types: %v", err)
	}
	if len(types) != len(defaultArticleTypes) {
		t.Fatalf("expected %d article types, got %d", len(defaultArticleTypes), len(types))
	}
	if _, err := s.GetArticleTypeByKey(context.Background(), "npc"); err != nil {
		t.Fatalf("npc type missing: %v", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Init(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}
	types, err := s.ListArticleTypes(ctx)
	if err != nil {
		t.Fatalf("list types: %v", err)
	}
	if len(types) != len(defaultArticleTypes) {
		t.Fatalf("re-init duplicated types: got %d", len(types))
	}
}
