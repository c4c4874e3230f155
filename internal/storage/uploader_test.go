package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskUploader(t *testing.T) {
	dir := t.TempDir()

	u, err := NewDiskUploader(dir, "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewDiskUploader() error: %v", err)
	}

	url, err := u.Upload([]byte("fake-png"), ".png")
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:8080/uploads/") {
		t.Errorf("url = %q, want the /uploads/ prefix", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q, want the original extension", url)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "fake-png" {
		t.Errorf("stored bytes = %q, want the uploaded bytes", data)
	}
}

func TestDiskUploaderDefaultsExtension(t *testing.T) {
	u, err := NewDiskUploader(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewDiskUploader() error: %v", err)
	}

	url, err := u.Upload([]byte("blob"), "")
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if !strings.HasSuffix(url, ".bin") {
		t.Errorf("url = %q, want .bin fallback extension", url)
	}
}
