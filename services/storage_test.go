package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(dir)
	ctx := context.Background()

	t.Run("is always configured", func(t *testing.T) {
		assert.True(t, storage.IsConfigured())
	})

	t.Run("upload and get round trip", func(t *testing.T) {
		result, err := storage.UploadReader(ctx,
			strings.NewReader("hello blob"), "cases/abc/doc.pdf", "application/pdf", 10)
		require.NoError(t, err)
		assert.Equal(t, "cases/abc/doc.pdf", result.Key)
		assert.Equal(t, "doc.pdf", result.FileName)
		assert.EqualValues(t, 10, result.FileSize)

		reader, contentType, err := storage.Get(ctx, "cases/abc/doc.pdf")
		require.NoError(t, err)
		defer reader.Close()

		assert.Equal(t, "application/pdf", contentType)
		body, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "hello blob", string(body))
	})

	t.Run("upload from a multipart file header", func(t *testing.T) {
		file := createMockFileHeader(t, "photo.png", "png-bytes", "image/png")
		result, err := storage.Upload(ctx, file, "cases/abc/photo.png")
		require.NoError(t, err)
		assert.Equal(t, "image/png", result.MimeType)
		assert.EqualValues(t, len("png-bytes"), result.FileSize)
	})

	t.Run("delete removes the blob", func(t *testing.T) {
		_, err := storage.UploadReader(ctx,
			strings.NewReader("bye"), "cases/abc/tmp.txt", "text/plain", 3)
		require.NoError(t, err)

		require.NoError(t, storage.Delete(ctx, "cases/abc/tmp.txt"))
		_, _, err = storage.Get(ctx, "cases/abc/tmp.txt")
		assert.Error(t, err)
	})

	t.Run("deleting a missing key is not an error", func(t *testing.T) {
		assert.NoError(t, storage.Delete(ctx, "cases/never/was.txt"))
	})
}

func TestGenerateCaseDocumentKey(t *testing.T) {
	key1 := GenerateCaseDocumentKey("case-1", "contract.pdf")
	key2 := GenerateCaseDocumentKey("case-1", "contract.pdf")

	assert.True(t, strings.HasPrefix(key1, filepath.Join("cases", "case-1")+string(filepath.Separator)))
	assert.Equal(t, ".pdf", filepath.Ext(key1))
	assert.NotEqual(t, key1, key2, "same filename must never collide")
}
