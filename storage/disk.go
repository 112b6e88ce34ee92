package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes images under a local uploads directory and returns
// "/uploads/<name>" references, served statically by the router.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(ctx context.Context, filename string, contentType string, body io.Reader) (string, error) {
	if err := ValidateImageName(filename); err != nil {
		return "", err
	}

	name := fmt.Sprintf("image-%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	// Read one byte past the cap so an oversized body is detected
	// rather than truncated.
	written, err := io.Copy(dst, io.LimitReader(body, MaxImageSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if written > MaxImageSize {
		os.Remove(path)
		return "", ErrFileTooLarge
	}

	return "/uploads/" + name, nil
}

func (s *DiskStore) Remove(ctx context.Context, ref string) error {
	name, ok := strings.CutPrefix(ref, "/uploads/")
	if !ok {
		// External URLs (seeded image links) have nothing to remove.
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
