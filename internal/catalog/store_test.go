package catalog

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/product-drawer/internal/domain/product"
	"github.com/xenking/product-drawer/internal/storage/memory"
)

type failingRepo struct {
	product.Repository
	err error
}

func (f *failingRepo) List(context.Context) ([]product.Product, error) { return nil, f.err }

func newStore(t *testing.T, repo product.Repository) *Store {
	t.Helper()
	s, err := NewStore(repo)
	require.NoError(t, err)
	return s
}

func TestStore_MutationsDoNotTouchLocalList(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	s := newStore(t, repo)

	require.NoError(t, s.Dispatch(ctx, AddProduct{Product: product.Product{
		Name:  "Kettle",
		Price: "30",
	}}))
	assert.Empty(t, s.Products(), "list only changes on fetch")

	require.NoError(t, s.Dispatch(ctx, FetchProducts{}))
	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Kettle", products[0].Name)
	assert.NotEmpty(t, products[0].ID)
}

func TestStore_EditAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	s := newStore(t, repo)

	p := product.Product{Name: "Kettle"}
	require.NoError(t, repo.Create(ctx, &p))

	p.Name = "Electric Kettle"
	require.NoError(t, s.Dispatch(ctx, EditProduct{Product: p}))
	require.NoError(t, s.Dispatch(ctx, FetchProducts{}))
	assert.Equal(t, "Electric Kettle", s.Products()[0].Name)

	require.NoError(t, s.Dispatch(ctx, DeleteProduct{ID: p.ID}))
	require.NoError(t, s.Dispatch(ctx, FetchProducts{}))
	assert.Empty(t, s.Products())
}

func TestStore_ErrorRecordedInState(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("backend unavailable")
	s := newStore(t, &failingRepo{err: boom})

	err := s.Dispatch(ctx, FetchProducts{})
	require.ErrorIs(t, err, boom)

	st := s.State()
	assert.ErrorIs(t, st.Err, boom)
	assert.False(t, st.Loading)
}

func TestStore_EditMissingProduct(t *testing.T) {
	s := newStore(t, memory.NewProductRepository())
	err := s.Dispatch(context.Background(), EditProduct{Product: product.Product{ID: "gone"}})
	require.ErrorIs(t, err, product.ErrNotFound)
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	require.NoError(t, repo.Create(ctx, &product.Product{Name: "Mug"}))
	s := newStore(t, repo)

	var seen []State
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st) })

	require.NoError(t, s.Dispatch(ctx, FetchProducts{}))
	require.NotEmpty(t, seen)
	assert.True(t, seen[0].Loading, "first notification marks loading")
	last := seen[len(seen)-1]
	assert.False(t, last.Loading)
	require.Len(t, last.Products, 1)

	n := len(seen)
	unsubscribe()
	require.NoError(t, s.Dispatch(ctx, FetchProducts{}))
	assert.Len(t, seen, n)
}

func TestStore_StateIsSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	require.NoError(t, repo.Create(ctx, &product.Product{Name: "Mug"}))
	s := newStore(t, repo)
	require.NoError(t, s.Dispatch(ctx, FetchProducts{}))

	products := s.Products()
	products[0].Name = "mutated"
	assert.Equal(t, "Mug", s.Products()[0].Name)
}
