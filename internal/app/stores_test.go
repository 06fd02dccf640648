package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/product-drawer/internal/domain/product"
)

func TestOpenRecordStore_Memory(t *testing.T) {
	b, err := OpenRecordStore(context.Background(), zaptest.NewLogger(t), StoreConfig{Driver: StoreMemory})
	require.NoError(t, err)
	defer b.Close()

	assert.Nil(t, b.Check)
	require.NoError(t, b.Store.Create(context.Background(), &product.Product{Name: "Scarf"}))
}

func TestOpenRecordStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	b, err := OpenRecordStore(ctx, zaptest.NewLogger(t), StoreConfig{
		Driver:      StoreRedis,
		RedisURL:    "redis://" + mr.Addr(),
		RedisPrefix: "app-test",
	})
	require.NoError(t, err)
	defer b.Close()

	require.NotNil(t, b.Check)
	require.NoError(t, b.Check(ctx))

	require.NoError(t, b.Store.Create(ctx, &product.Product{Name: "Scarf"}))
	members, err := mr.ZMembers("app-test:products")
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestOpenRecordStore_Unknown(t *testing.T) {
	_, err := OpenRecordStore(context.Background(), zaptest.NewLogger(t), StoreConfig{Driver: "mongo"})
	require.Error(t, err)
}

func TestOpenBlobStore_Local(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b, err := OpenBlobStore(ctx, zaptest.NewLogger(t), BlobConfig{
		Driver:        BlobLocal,
		Dir:           dir,
		PublicBaseURL: "/media",
	})
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, dir, b.MediaDir)
	require.NoError(t, b.Check(ctx))
	require.NoError(t, b.Store.Put(ctx, "a.jpg", bytes.NewReader([]byte("x")), "image/jpeg"))
	url, err := b.Store.DownloadURL(ctx, "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/media/a.jpg", url)
}

func TestOpenBlobStore_Memory(t *testing.T) {
	b, err := OpenBlobStore(context.Background(), zaptest.NewLogger(t), BlobConfig{
		Driver:        BlobMemory,
		PublicBaseURL: "https://media.test",
	})
	require.NoError(t, err)
	assert.Empty(t, b.MediaDir)
	assert.Nil(t, b.Check)
}

func TestS3BaseURL(t *testing.T) {
	assert.Empty(t, s3BaseURL(BlobConfig{PublicBaseURL: "/media"}))
	assert.Equal(t, "https://cdn.test", s3BaseURL(BlobConfig{PublicBaseURL: "https://cdn.test"}))
}
