package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildFileHeader constructs a real multipart.FileHeader by round-tripping
// content through a multipart form.
func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	part.Write(content)
	writer.Close()

	req, _ := http.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("Failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int
		expectedCode string
	}{
		{name: "Valid PNG", filename: "logo.png", size: 100},
		{name: "Uppercase extension accepted", filename: "logo.PNG", size: 100},
		{name: "JPEG rejected", filename: "logo.jpg", size: 100, expectedCode: "INVALID_FILE_FORMAT"},
		{name: "No extension rejected", filename: "logo", size: 100, expectedCode: "INVALID_FILE_FORMAT"},
		{name: "Oversized file rejected", filename: "logo.png", size: MaxFileSize + 1, expectedCode: "FILE_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := buildFileHeader(t, tt.filename, bytes.Repeat([]byte("a"), tt.size))

			err := ValidateImageFile(header)

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}
			var uploadErr *FileUploadError
			assert.ErrorAs(t, err, &uploadErr)
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}

func TestSaveUploadedFile(t *testing.T) {
	dir := t.TempDir()
	header := buildFileHeader(t, "logo.png", []byte("png-bytes"))

	filename, err := SaveUploadedFile(header, dir)

	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".png"))
	// Stored under a generated name, not the client's filename.
	assert.NotEqual(t, "logo.png", filename)

	content, err := os.ReadFile(filepath.Join(dir, filename))
	assert.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), content)
}

func TestSaveUploadedFile_NamesNeverCollide(t *testing.T) {
	dir := t.TempDir()
	header := buildFileHeader(t, "logo.png", []byte("png-bytes"))

	first, err := SaveUploadedFile(header, dir)
	assert.NoError(t, err)
	second, err := SaveUploadedFile(header, dir)
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDeleteUploadedFile(t *testing.T) {
	dir := t.TempDir()
	header := buildFileHeader(t, "logo.png", []byte("png-bytes"))
	filename, err := SaveUploadedFile(header, dir)
	assert.NoError(t, err)

	assert.NoError(t, DeleteUploadedFile(filename, dir))
	_, err = os.Stat(filepath.Join(dir, filename))
	assert.True(t, os.IsNotExist(err))

	// Deleting again, or deleting nothing, is not an error.
	assert.NoError(t, DeleteUploadedFile(filename, dir))
	assert.NoError(t, DeleteUploadedFile("", dir))
}

func TestGetImageURL(t *testing.T) {
	assert.Equal(t, "/api/v1/uploads/abc.png", GetImageURL("abc.png"))
	assert.Empty(t, GetImageURL(""))
}
