package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadAndExists(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewStorage(base)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Upload(ctx, "runs/talk.srt", strings.NewReader("1\n")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(base, "runs", "talk.srt"))
	if err != nil || string(data) != "1\n" {
		t.Fatalf("file content = %q, %v", data, err)
	}

	ok, err := s.Exists(ctx, "runs/talk.srt")
	if err != nil || !ok {
		t.Errorf("Exists = %v, %v", ok, err)
	}

	if err := s.Upload(ctx, "runs/talk.srt", strings.NewReader("2\n")); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(filepath.Join(base, "runs", "talk.srt"))
	if string(data) != "2\n" {
		t.Errorf("overwrite content = %q", data)
	}

	entries, _ := os.ReadDir(filepath.Join(base, "runs"))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Upload(ctx, "a.txt", strings.NewReader("x"))

	if err := s.Delete(ctx, "a.txt"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Exists(ctx, "a.txt"); ok {
		t.Error("file still exists after Delete")
	}
	if err := s.Delete(ctx, "a.txt"); err != nil {
		t.Errorf("deleting a missing file: %v", err)
	}
}

func TestPathEscape(t *testing.T) {
	base := t.TempDir()
	s, err := NewStorage(base)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Upload(context.Background(), "../../etc/x", strings.NewReader("x")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "etc", "x")); err != nil {
		t.Errorf("path should be confined to the base directory: %v", err)
	}
}

func TestURL(t *testing.T) {
	base := t.TempDir()
	s, _ := NewStorage(base)
	u, err := s.URL(context.Background(), "talk.txt")
	if err != nil {
		t.Fatal(err)
	}
	if u != "file://"+filepath.Join(base, "talk.txt") {
		t.Errorf("URL = %q", u)
	}
}
