package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pgzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/product-drawer/internal/catalog"
	"github.com/xenking/product-drawer/internal/screen"
	"github.com/xenking/product-drawer/internal/storage/memory"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestReadRows(t *testing.T) {
	in := strings.Join([]string{
		`{"name":"Scarf","price":"25.50","offeredPrice":19,"image":"/tmp/scarf.jpg"}`,
		``,
		`{"name":"Hat","price":null,"extra":{"nested":[1,2]},"imageUrl":"file:///tmp/hat.png"}`,
	}, "\n")

	rows, err := ReadRows(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Name: "Scarf", Price: "25.50", OfferedPrice: "19", Image: "/tmp/scarf.jpg"},
		{Name: "Hat", Image: "file:///tmp/hat.png"},
	}, rows)
}

func TestReadRows_BadLine(t *testing.T) {
	_, err := ReadRows(strings.NewReader("{\"name\":\"ok\"}\n{\"price\":true}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestOpenRows_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.ndjson.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := pgzip.NewWriter(f)
	_, err = gz.Write([]byte(`{"name":"Scarf","image":"a.jpg"}` + "\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	rows, err := OpenRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Scarf", rows[0].Name)
}

func TestReadSeed(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "..", "db", "seed", "products.json"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := ReadSeed(f)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Canvas Sneakers", rows[0].Name)
	assert.Equal(t, "59.99", rows[0].Price)
	assert.Equal(t, "https://images.example.com/catalog/canvas-sneakers.jpg", rows[0].Image)
}

func TestSeed(t *testing.T) {
	repo := memory.NewProductRepository()
	ctx := context.Background()

	res, err := Seed(ctx, repo, []Row{
		{Name: "Scarf", Price: "10", OfferedPrice: "Rs 8", Image: "https://cdn.test/scarf.jpg"},
		{Name: "Hat"},
	})
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Created: 2}, res)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "https://cdn.test/scarf.jpg", list[0].ImageURL)
	assert.Equal(t, "Rs 8", list[0].OfferedPrice)
	assert.Empty(t, list[1].Price)
}

func TestSeed_Rerun(t *testing.T) {
	repo := memory.NewProductRepository()
	ctx := context.Background()
	rows := []Row{
		{Name: "Scarf", Price: "10"},
		{Name: "Hat", Price: "5"},
		{Name: "Hat", Price: "6"},
	}

	res, err := Seed(ctx, repo, rows)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Created: 2, Skipped: 1}, res)

	res, err = Seed(ctx, repo, rows)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Skipped: 3}, res)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCollisions(t *testing.T) {
	rows := []Row{
		{Image: "/camera/photo.jpg"},
		{Image: "/downloads/photo.jpg"},
		{Image: "/camera/other.jpg"},
		{Image: "file:///x/photo.jpg"},
		{},
	}
	assert.Equal(t, []string{"photo.jpg"}, Collisions(rows))
	assert.Empty(t, Collisions(rows[2:3]))
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	repo := memory.NewProductRepository()
	store, err := catalog.NewStore(repo)
	require.NoError(t, err)
	blobs := memory.NewBlobStore("https://media.test")

	rows := []Row{
		{Name: "Scarf", Price: "25", OfferedPrice: "20", Image: writeFile(t, dir, "a/scarf.jpg", "scarf")},
		{Name: "Hat", Price: "10", Image: "file://" + writeFile(t, dir, "a/hat.png", "hat")},
		{Name: "Missing", Image: filepath.Join(dir, "nope.jpg")},
		{Name: "NoImage"},
		{Name: "FreeText", Price: "Rs 499", Image: writeFile(t, dir, "b/x.jpg", "x")},
	}

	im := New(screen.NewUploader(blobs), store, zaptest.NewLogger(t), 2)
	res, err := im.Import(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 2, res.Failed)
	assert.Empty(t, res.Collisions)
	assert.Equal(t, 3, blobs.Puts())

	products := store.Products()
	require.Len(t, products, 3, "list is reloaded after import")
	prices := make(map[string]string, len(products))
	for _, p := range products {
		prices[p.Name] = p.Price
	}
	assert.Equal(t, map[string]string{"Scarf": "25", "Hat": "10", "FreeText": "Rs 499"}, prices)
}

func TestImport_Cancelled(t *testing.T) {
	store, err := catalog.NewStore(memory.NewProductRepository())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	im := New(screen.NewUploader(memory.NewBlobStore("")), store, nil, 1)
	_, err = im.Import(ctx, []Row{{Name: "A", Image: writeFile(t, t.TempDir(), "a.jpg", "a")}})
	require.ErrorIs(t, err, context.Canceled)
}
