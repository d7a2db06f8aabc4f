package filestorage

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
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func makeUpload(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("logo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["logo"][0]
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	fh := makeUpload(t, "Crest.PNG", pngHeader)
	url, err := ls.SaveFileWithPath(fh, "logos/../logos")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/logos/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored := filepath.Join(dir, "logos", filepath.Base(url))
	_, err = os.Stat(stored)
	require.NoError(t, err)

	require.NoError(t, ls.DeleteFile(url))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, ls.DeleteFile(url))
}

func TestLocalStorage_DeleteRejectsForeignPaths(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	assert.ErrorIs(t, ls.DeleteFile("http://evil.test/uploads/x.png"), ErrInvalidStoragePath)
	assert.ErrorIs(t, ls.DeleteFile("http://localhost:8080/uploads/../../etc/passwd"), ErrInvalidStoragePath)
}

func TestCheck(t *testing.T) {
	rule := ImageRule(1024)

	assert.NoError(t, Check(makeUpload(t, "a.png", pngHeader), rule))
	assert.ErrorIs(t, Check(makeUpload(t, "a.txt", []byte("just text")), rule), ErrUnsupportedType)
	assert.ErrorIs(t, Check(makeUpload(t, "big.png", append(pngHeader, make([]byte, 2048)...)), rule), ErrFileTooLarge)
}
