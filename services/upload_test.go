package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foodhopper/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	fw, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1 << 20))
	return req.MultipartForm.File["file"][0]
}

func TestAllowedImageFile(t *testing.T) {
	cases := []struct {
		filename string
		allowed  bool
	}{
		{"photo.png", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"anim.gif", true},
		{"modern.webp", true},
		{"notes.txt", false},
		{"script.png.exe", false},
		{"noext", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, AllowedImageFile(tc.filename), tc.filename)
	}
}

func TestSaveImage(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	header := uploadedFileHeader(t, "Front View.PNG", []byte("png-bytes"))
	name, err := SaveImage(header, "place_7")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "place_7_"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	data, err := os.ReadFile(filepath.Join(config.UploadDir(), name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	header := uploadedFileHeader(t, "notes.txt", []byte("plain text"))
	_, err := SaveImage(header, "place_7")
	assert.Error(t, err)
}

func TestSaveImageNamesAreUnique(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	header := uploadedFileHeader(t, "same.png", []byte("x"))
	first, err := SaveImage(header, "place_1")
	require.NoError(t, err)
	second, err := SaveImage(header, "place_1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRemoveImage(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	header := uploadedFileHeader(t, "gone.png", []byte("x"))
	name, err := SaveImage(header, "place_1")
	require.NoError(t, err)

	require.NoError(t, RemoveImage(name))
	_, statErr := os.Stat(filepath.Join(config.UploadDir(), name))
	assert.True(t, os.IsNotExist(statErr))

	// Already gone and empty names are fine.
	assert.NoError(t, RemoveImage(name))
	assert.NoError(t, RemoveImage(""))
}
