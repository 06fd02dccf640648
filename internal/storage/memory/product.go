// Package memory provides in-process record and object stores. They back the
// "memory" drivers and the package tests of the layers above.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xenking/product-drawer/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository keeps products in a map, listed in creation order.
type ProductRepository struct {
	mu    sync.RWMutex
	byID  map[string]product.Product
	order []string
	now   func() time.Time
}

// NewProductRepository returns an empty ProductRepository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		byID: make(map[string]product.Product),
		now:  time.Now,
	}
}

// List returns all products ordered by creation.
func (r *ProductRepository) List(_ context.Context) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]product.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// Create stores p under a new ID.
func (r *ProductRepository) Create(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = uuid.NewString()
	p.CreatedAt = r.now().UTC()
	r.byID[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

// Update overwrites an existing product, keeping its creation time.
func (r *ProductRepository) Update(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[p.ID]
	if !ok {
		return product.ErrNotFound
	}
	p.CreatedAt = old.CreatedAt
	r.byID[p.ID] = *p
	return nil
}

// Delete removes the product with the given ID, if present.
func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return nil
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}
