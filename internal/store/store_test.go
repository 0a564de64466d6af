package store

import (
	"path/filepath"
	"testing"
)

func TestStateStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "marquee.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.Put("favorites", []byte(`[{"id":42}]`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	got, ok, err := s.Get("favorites")
	if err != nil || !ok {
		t.Fatalf("Get = (%q, %v, %v), want present", got, ok, err)
	}
	if string(got) != `[{"id":42}]` {
		t.Fatalf("Get = %q", got)
	}
}

func TestStateStore_MissingKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "marquee.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if _, ok, err := s.Get("favorites"); ok || err != nil {
		t.Fatalf("Get on empty store = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestStateStore_MemoryOnly(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := s.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	got, ok, _ := s.Get("k")
	if !ok || string(got) != "v" {
		t.Fatalf("Get = (%q, %v), want v", got, ok)
	}

	// Returned slices must not alias the stored value
	got[0] = 'x'
	again, _, _ := s.Get("k")
	if string(again) != "v" {
		t.Fatalf("stored value mutated through Get result: %q", again)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatalf("key still present after Delete")
	}
}
