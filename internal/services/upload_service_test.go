package services_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katalog/internal/services"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// fileHeader builds a multipart.FileHeader the way a server sees an upload.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestUploadService_StoresImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	service := services.NewUploadService(dir, "/images", 0)

	url, err := service.Store(fileHeader(t, "lamp photo.png", pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/images/"))
	assert.True(t, strings.HasSuffix(url, "-lamp_photo.png"))

	written, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, written)
}

func TestUploadService_RejectsUnsupportedType(t *testing.T) {
	service := services.NewUploadService(t.TempDir(), "/images", 0)

	_, err := service.Store(fileHeader(t, "notes.png", []byte("just some text pretending to be an image")))
	assert.ErrorIs(t, err, services.ErrUnsupportedFileType)
}

func TestUploadService_RejectsLargeFile(t *testing.T) {
	service := services.NewUploadService(t.TempDir(), "/images", 16)

	_, err := service.Store(fileHeader(t, "big.png", append(pngHeader, make([]byte, 64)...)))
	assert.ErrorIs(t, err, services.ErrFileTooLarge)
}

func TestUploadService_MissingFile(t *testing.T) {
	service := services.NewUploadService(t.TempDir(), "/images", 0)

	_, err := service.Store(nil)
	assert.ErrorIs(t, err, services.ErrMissingFile)
}

func TestUploadService_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	service := services.NewUploadService(dir, "/images", 0)

	url, err := service.Store(fileHeader(t, "../../etc/evil.png", pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "-evil.png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
