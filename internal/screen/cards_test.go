package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/product-drawer/internal/domain/product"
)

func TestCards(t *testing.T) {
	cards := Cards([]product.Product{
		{ID: "1", Name: "Scarf", Price: "25.50", OfferedPrice: "19", ImageURL: "u1"},
		{ID: "2", Name: "Hat"},
	})

	require.Len(t, cards, 2)
	assert.Equal(t, Card{
		ID:           "1",
		Title:        "Scarf",
		ListPrice:    "25.50",
		OfferedPrice: "19",
		ImageURL:     "u1",
		Actions:      []string{ActionDelete, ActionEdit},
	}, cards[0])
	assert.Empty(t, cards[1].ListPrice)
	assert.Empty(t, Cards(nil))
}
