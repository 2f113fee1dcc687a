package kv

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bilgisen/gossipd/internal/config"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "gossip-favorites"); err != nil || found {
		t.Fatalf("expected absent key, got found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, "gossip-favorites", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found, err := s.Get(ctx, "gossip-favorites")
	if err != nil || !found {
		t.Fatalf("expected key, got found=%v err=%v", found, err)
	}
	if !bytes.Equal(got, []byte(`[{"id":"1"}]`)) {
		t.Fatalf("unexpected value %s", got)
	}

	if err := s.Set(ctx, "gossip-favorites", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = s.Get(ctx, "gossip-favorites")
	if string(got) != "[]" {
		t.Fatalf("expected overwritten value, got %s", got)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore()
	buf := []byte("abc")
	if err := s.Set(context.Background(), "k", buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'z'
	got, _, _ := s.Get(context.Background(), "k")
	if string(got) != "abc" {
		t.Fatalf("store aliased caller buffer: %s", got)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "kv"))
	if err != nil {
		t.Fatal(err)
	}
	exerciseStore(t, s)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s1, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s1.Set(context.Background(), "../escape", []byte("x")); err != nil {
		t.Fatal(err)
	}

	s2, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, found, err := s2.Get(context.Background(), "../escape")
	if err != nil || !found || string(got) != "x" {
		t.Fatalf("reopen: got %q found=%v err=%v", got, found, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file in %s, got %d", dir, len(entries))
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New(context.Background(), &config.Config{KVBackend: "etcd"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestNewMemoryBackend(t *testing.T) {
	s, err := New(context.Background(), &config.Config{KVBackend: "memory"})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("expected *MemoryStore, got %T", s)
	}
}
