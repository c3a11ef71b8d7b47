// Package uploads stores service photos on local disk and keeps the
// upload directory free of files no service references anymore.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxFileSize caps a single uploaded image at 5MB.
const MaxFileSize = 5 << 20

// ErrNotImage is returned when the uploaded file is not an image.
var ErrNotImage = fmt.Errorf("only image uploads are allowed")

// Save writes an uploaded image into dir under a random name, keeping
// the original extension, and returns the stored file name. The
// declared Content-Type must be image/*.
func Save(dir string, file multipart.File, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, MaxFileSize)); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return name, nil
}
