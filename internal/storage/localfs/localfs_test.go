package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/product-drawer/internal/domain/blob"
)

func TestStore_PutAndURL(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, "http://localhost:8080/media/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "IMG 01.jpg", strings.NewReader("jpeg"), "image/jpeg"))

	u, err := s.DownloadURL(ctx, "IMG 01.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/IMG%2001.jpg", u)

	data, err := os.ReadFile(filepath.Join(dir, "IMG 01.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestStore_SameNameOverwrites(t *testing.T) {
	s, err := New(t.TempDir(), "http://media")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.png", strings.NewReader("one"), ""))
	first, err := s.DownloadURL(ctx, "a.png")
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "a.png", strings.NewReader("two"), ""))
	second, err := s.DownloadURL(ctx, "a.png")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	data, err := os.ReadFile(filepath.Join(s.Dir(), "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestStore_Errors(t *testing.T) {
	s, err := New(t.TempDir(), "http://media")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.DownloadURL(ctx, "missing.png")
	require.ErrorIs(t, err, blob.ErrNotFound)

	err = s.Put(ctx, "../escape.png", strings.NewReader("x"), "")
	require.ErrorIs(t, err, blob.ErrInvalidName)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = s.Put(cancelled, "late.png", strings.NewReader("x"), "")
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(filepath.Join(s.Dir(), "late.png"))
	assert.True(t, os.IsNotExist(statErr))
}
