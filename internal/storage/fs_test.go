package storage_test

import (
	"io"
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/storage"
)

func TestFSStoreRoundTrip(t *testing.T) {
	s, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	key, err := s.Put("questions/abc/diagram.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if key != "questions/abc/diagram.png" {
		t.Errorf("key = %q", key)
	}

	rc, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "png-bytes" {
		t.Errorf("content = %q", b)
	}
}

func TestFSStoreEmptyKey(t *testing.T) {
	s, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	if _, err := s.Put("", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestFSStoreGetMissing(t *testing.T) {
	s, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	if _, err := s.Get("questions/none/none.png"); err == nil {
		t.Fatal("expected error for missing key")
	}
}
