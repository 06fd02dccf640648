package screen

import "github.com/xenking/product-drawer/internal/domain/product"

// Card actions.
const (
	ActionDelete = "Delete"
	ActionEdit   = "Edit"
)

// Card is the presentation of one product in the list.
type Card struct {
	ID    string
	Title string
	// ListPrice is rendered struck through next to OfferedPrice.
	ListPrice    string
	OfferedPrice string
	ImageURL     string
	Actions      []string
}

// Cards maps products to cards in list order.
func Cards(products []product.Product) []Card {
	cards := make([]Card, len(products))
	for i, p := range products {
		cards[i] = Card{
			ID:           p.ID,
			Title:        p.Name,
			ListPrice:    p.Price,
			OfferedPrice: p.OfferedPrice,
			ImageURL:     p.ImageURL,
			Actions:      []string{ActionDelete, ActionEdit},
		}
	}
	return cards
}
