package blobstore

import (
	"context"
	"io"
	"strings"
	"testing"
)

func newStoreForTest(t *testing.T) *LocalDir {
	t.Helper()
	s, err := NewLocalDir(t.TempDir(), "http://127.0.0.1:7433")
	if err != nil {
		t.Fatalf("new local dir: %v", err)
	}
	return s
}

func TestPutOpenRoundTrip(t *testing.T) {
	s := newStoreForTest(t)
	ctx := context.Background()

	res, err := s.Put(ctx, "u1/d1.png", strings.NewReader("png bytes"), "image/png")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if res.SizeBytes != int64(len("png bytes")) {
		t.Fatalf("expected size %d, got %d", len("png bytes"), res.SizeBytes)
	}
	if res.ContentType != "image/png" {
		t.Fatalf("expected content type image/png, got %q", res.ContentType)
	}

	rc, err := s.Open(ctx, "u1/d1.png")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "png bytes" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestPut_ReplacesExistingObject(t *testing.T) {
	s := newStoreForTest(t)
	ctx := context.Background()

	if _, err := s.Put(ctx, "u1/d1.png", strings.NewReader("old"), "image/png"); err != nil {
		t.Fatalf("put old: %v", err)
	}
	if _, err := s.Put(ctx, "u1/d1.png", strings.NewReader("new"), "image/png"); err != nil {
		t.Fatalf("put new: %v", err)
	}

	rc, err := s.Open(ctx, "u1/d1.png")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "new" {
		t.Fatalf("expected replacement content, got %q", got)
	}
}

func TestDelete_MissingObjectTolerated(t *testing.T) {
	s := newStoreForTest(t)
	ctx := context.Background()

	if err := s.Delete(ctx, "u1/never-written.png"); err != nil {
		t.Fatalf("expected missing delete to succeed, got %v", err)
	}

	if _, err := s.Put(ctx, "u1/d1.png", strings.NewReader("x"), "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Delete(ctx, "u1/d1.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Open(ctx, "u1/d1.png"); err == nil {
		t.Fatal("expected open of deleted object to fail")
	}
	if err := s.Delete(ctx, "u1/d1.png"); err != nil {
		t.Fatalf("expected second delete to succeed, got %v", err)
	}
}

func TestMakePublic(t *testing.T) {
	s := newStoreForTest(t)
	url, err := s.MakePublic(context.Background(), "u1/d1.pdf")
	if err != nil {
		t.Fatalf("make public: %v", err)
	}
	if url != "http://127.0.0.1:7433/blobs/u1/d1.pdf" {
		t.Fatalf("unexpected public url %q", url)
	}
}

func TestKeyValidation(t *testing.T) {
	s := newStoreForTest(t)
	ctx := context.Background()

	for _, key := range []string{"", "/abs/path.png", "../escape.png", "u1/../../etc/passwd", "tmp"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), "image/png"); err == nil {
			t.Fatalf("expected put with key %q to fail", key)
		}
		if _, err := s.Open(ctx, key); err == nil {
			t.Fatalf("expected open with key %q to fail", key)
		}
	}
}
