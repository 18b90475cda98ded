package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gifUpload(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestUploadService_SameNameSameMillisecond(t *testing.T) {
	dir := t.TempDir()
	s := NewUploadService(dir, "/images", 0)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	first, err := s.Store(gifUpload(t, "logo.gif"))
	require.NoError(t, err)
	second, err := s.Store(gifUpload(t, "logo.gif"))
	require.NoError(t, err)
	third, err := s.Store(gifUpload(t, "logo.gif"))
	require.NoError(t, err)

	assert.Equal(t, "/images/1700000000000-logo.gif", first)
	assert.Equal(t, "/images/1700000000000-1-logo.gif", second)
	assert.Equal(t, "/images/1700000000000-2-logo.gif", third)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	_, err = os.Stat(filepath.Join(dir, "1700000000000-1-logo.gif"))
	assert.NoError(t, err)
}
