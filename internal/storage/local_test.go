package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// smallest valid PNG signature + IHDR start; enough for content sniffing
var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(dir, zap.NewNop())
	require.NoError(t, err)
	return s, dir
}

func TestLocalStorage_UploadGetDelete(t *testing.T) {
	s, dir := newTestStorage(t)
	ctx := context.Background()

	name, err := s.UploadFile(ctx, pngData, "room.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "listing_"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	_, err = os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)

	data, err := s.GetFile(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, pngData, data)

	require.NoError(t, s.DeleteFile(ctx, name))
	_, err = s.GetFile(ctx, name)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.ErrorIs(t, s.DeleteFile(ctx, name), ErrFileNotFound)
}

func TestLocalStorage_ExtensionFromContent(t *testing.T) {
	s, _ := newTestStorage(t)

	name, err := s.UploadFile(context.Background(), pngData, "blob")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))
}

func TestLocalStorage_RejectsNonImages(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	_, err := s.UploadFile(ctx, nil, "empty.jpg")
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = s.UploadFile(ctx, []byte("just some text"), "notes.jpg")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	for _, name := range []string{"", "../secret", "a/b.png", ".hidden"} {
		_, err := s.GetFile(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, s.DeleteFile(ctx, name), ErrInvalidName, name)
	}
}
