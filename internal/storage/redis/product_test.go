package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/product-drawer/internal/domain/product"
)

func newTestRepo(t *testing.T) (*ProductRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := NewProductRepository(rdb, WithPrefix("test"))
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo, mr
}

func TestProductRepository_CreateAndList(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	a := &product.Product{
		Name:         "Lamp",
		Price:        "49.90",
		OfferedPrice: "Rs 39",
		ImageURL:     "https://media.test/lamp.jpg",
	}
	b := &product.Product{Name: "Chair", Price: "150", OfferedPrice: "120"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.True(t, mr.Exists("test:product:"+a.ID))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, "Lamp", list[0].Name)
	assert.Equal(t, "49.90", list[0].Price)
	assert.Equal(t, "Rs 39", list[0].OfferedPrice)
	assert.Equal(t, "https://media.test/lamp.jpg", list[0].ImageURL)
	assert.Equal(t, a.CreatedAt, list[0].CreatedAt)
	assert.Equal(t, b.ID, list[1].ID)
}

func TestProductRepository_Update(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	p := &product.Product{Name: "Lamp", Price: "10", OfferedPrice: "8"}
	require.NoError(t, repo.Create(ctx, p))
	created := p.CreatedAt

	edit := &product.Product{ID: p.ID, Name: "Desk Lamp", Price: "12", OfferedPrice: "9", ImageURL: "x"}
	require.NoError(t, repo.Update(ctx, edit))
	assert.Equal(t, created, edit.CreatedAt)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Desk Lamp", list[0].Name)
	assert.Equal(t, "x", list[0].ImageURL)
}

func TestProductRepository_UpdateMissing(t *testing.T) {
	repo, _ := newTestRepo(t)
	err := repo.Update(context.Background(), &product.Product{ID: "missing"})
	require.ErrorIs(t, err, product.ErrNotFound)
}

func TestProductRepository_Delete(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	p := &product.Product{Name: "Lamp"}
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))
	require.NoError(t, repo.Delete(ctx, "missing"))

	assert.False(t, mr.Exists("test:product:"+p.ID))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductRepository_ListSkipsDanglingIndex(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	_, err := mr.ZAdd("test:products", 1, "ghost")
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
