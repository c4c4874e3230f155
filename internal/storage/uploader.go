package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Uploader is the object-storage collaborator: bytes in, public URL out.
type Uploader interface {
	Upload(data []byte, ext string) (string, error)
}

// DiskUploader stores uploads on the local filesystem and serves them from
// baseURL. Swap in a cloud-backed Uploader without touching the handlers.
type DiskUploader struct {
	dir     string
	baseURL string
}

func NewDiskUploader(dir, baseURL string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskUploader{dir: dir, baseURL: baseURL}, nil
}

func (u *DiskUploader) Upload(data []byte, ext string) (string, error) {
	if ext == "" {
		ext = ".bin"
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(u.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return u.baseURL + "/uploads/" + name, nil
}
