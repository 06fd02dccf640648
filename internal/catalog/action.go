package catalog

import "github.com/xenking/product-drawer/internal/domain/product"

// Action is a request to change or reload the catalog.
type Action interface {
	// Kind names the action in logs and metrics.
	Kind() string
}

// FetchProducts reloads the full product list into the store state.
type FetchProducts struct{}

// AddProduct creates Product in the record store.
type AddProduct struct {
	Product product.Product
}

// EditProduct overwrites the record with Product.ID.
type EditProduct struct {
	Product product.Product
}

// DeleteProduct removes the record with ID.
type DeleteProduct struct {
	ID string
}

func (FetchProducts) Kind() string { return "fetch_products" }
func (AddProduct) Kind() string    { return "add_product" }
func (EditProduct) Kind() string   { return "edit_product" }
func (DeleteProduct) Kind() string { return "delete_product" }
