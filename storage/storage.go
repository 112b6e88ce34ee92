package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// MaxImageSize caps uploads at 5 MB.
const MaxImageSize = 5 << 20

// ErrFileTooLarge is returned when an upload exceeds MaxImageSize.
var ErrFileTooLarge = errors.New("file too large")

// ErrUnsupportedType is returned for non-raster-image uploads.
var ErrUnsupportedType = errors.New("only image files are allowed")

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImageName rejects filenames without an allowed raster image
// extension.
func ValidateImageName(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return ErrUnsupportedType
	}
	return nil
}

// ImageStore persists uploaded product images and hands back the
// reference stored on the product document.
type ImageStore interface {
	// Save writes the image and returns its reference (a relative path
	// or URL).
	Save(ctx context.Context, filename string, contentType string, body io.Reader) (string, error)
	// Remove deletes a previously saved image. Removing a reference
	// that no longer exists is not an error.
	Remove(ctx context.Context, ref string) error
}
