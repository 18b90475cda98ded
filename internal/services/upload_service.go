package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxUploadBytes is the largest image accepted by UploadService.
const DefaultMaxUploadBytes = 5 * 1024 * 1024

const maxNameAttempts = 100

// Upload errors.
var (
	ErrMissingFile         = errors.New("no file uploaded")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file is too large")
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

// UploadService writes product images to disk. Files are never overwritten or removed.
type UploadService struct {
	dir       string
	urlPrefix string
	maxBytes  int64
	now       func() time.Time
}

// NewUploadService creates an UploadService storing files in dir and serving
// them under urlPrefix.
func NewUploadService(dir, urlPrefix string, maxBytes int64) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{
		dir:       dir,
		urlPrefix: urlPrefix,
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// MaxBytes returns the size limit applied to uploads.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Store checks the size and sniffed content type of the file, writes it as
// "<unix millis>-<original name>" and returns its public URL.
func (s *UploadService) Store(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrMissingFile
	}
	if fh.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, fh.Size, s.maxBytes)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	if !allowedImageTypes[mtype.String()] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory %s: %w", s.dir, err)
	}

	dst, name, err := s.createUnique(sanitizeFilename(fh.Filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, io.LimitReader(src, s.maxBytes)); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}

	return path.Join(s.urlPrefix, name), nil
}

// createUnique creates "<unix millis>-<base>" in the upload directory. When an
// upload with the same name landed in the same millisecond, a counter is
// inserted before the base name.
func (s *UploadService) createUnique(base string) (*os.File, string, error) {
	millis := s.now().UnixMilli()
	name := fmt.Sprintf("%d-%s", millis, base)
	for attempt := 1; ; attempt++ {
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, fs.ErrExist) || attempt >= maxNameAttempts {
			return nil, "", fmt.Errorf("failed to create %s: %w", name, err)
		}
		name = fmt.Sprintf("%d-%d-%s", millis, attempt, base)
	}
}

// sanitizeFilename keeps only the base name and replaces characters that are
// awkward in URLs.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '?', '#', '%':
			return '_'
		}
		return r
	}, name)
	if name == "." || name == "" {
		return "upload"
	}
	return name
}
