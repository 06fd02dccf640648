// Package redis implements the product record store on Redis.
//
// Every product is a hash at "<prefix>:product:<id>"; the sorted set
// "<prefix>:products" holds product IDs scored by creation time and defines
// list order.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/xenking/product-drawer/internal/domain/product"
)

const defaultPrefix = "catalog"

const (
	fieldName         = "name"
	fieldPrice        = "price"
	fieldOfferedPrice = "offered_price"
	fieldImageURL     = "image_url"
	fieldCreatedAt    = "created_at"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by Redis.
type ProductRepository struct {
	rdb    redis.UniversalClient
	prefix string
	now    func() time.Time
}

// Option configures a ProductRepository.
type Option func(*ProductRepository)

// WithPrefix sets the key prefix. Defaults to "catalog".
func WithPrefix(prefix string) Option {
	return func(r *ProductRepository) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewProductRepository returns a ProductRepository using rdb.
func NewProductRepository(rdb redis.UniversalClient, opts ...Option) *ProductRepository {
	r := &ProductRepository{
		rdb:    rdb,
		prefix: defaultPrefix,
		now:    time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *ProductRepository) indexKey() string { return r.prefix + ":products" }

func (r *ProductRepository) productKey(id string) string { return r.prefix + ":product:" + id }

// List returns all products ordered by creation time.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	ids, err := r.rdb.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing product ids: %w", err)
	}
	if len(ids) == 0 {
		return []product.Product{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, r.productKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	out := make([]product.Product, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// Index entry without a hash: deleted between ZRANGE and HGETALL.
			continue
		}
		p, err := decodeProduct(ids[i], fields)
		if err != nil {
			return nil, errors.Wrapf(err, "decode product %q", ids[i])
		}
		out = append(out, p)
	}
	return out, nil
}

// Create stores p under a freshly generated ID.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	id := uuid.NewString()
	createdAt := r.now().UTC()

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.productKey(id), encodeProduct(p, createdAt))
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{
			Score:  float64(createdAt.UnixMicro()),
			Member: id,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	p.ID = id
	p.CreatedAt = createdAt
	return nil
}

// Update overwrites an existing product, keeping its creation time.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	key := r.productKey(p.ID)

	raw, err := r.rdb.HGet(ctx, key, fieldCreatedAt).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return product.ErrNotFound
		}
		return fmt.Errorf("updating product %q: %w", p.ID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return errors.Wrapf(err, "parse created_at of %q", p.ID)
	}

	if err := r.rdb.HSet(ctx, key, encodeProduct(p, createdAt)).Err(); err != nil {
		return fmt.Errorf("updating product %q: %w", p.ID, err)
	}
	p.CreatedAt = createdAt
	return nil
}

// Delete removes the product with the given ID. Missing keys are ignored.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.productKey(id))
		pipe.ZRem(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting product %q: %w", id, err)
	}
	return nil
}

func encodeProduct(p *product.Product, createdAt time.Time) map[string]any {
	return map[string]any{
		fieldName:         p.Name,
		fieldPrice:        p.Price,
		fieldOfferedPrice: p.OfferedPrice,
		fieldImageURL:     p.ImageURL,
		fieldCreatedAt:    createdAt.Format(time.RFC3339Nano),
	}
}

func decodeProduct(id string, fields map[string]string) (product.Product, error) {
	p := product.Product{
		ID:           id,
		Name:         fields[fieldName],
		Price:        fields[fieldPrice],
		OfferedPrice: fields[fieldOfferedPrice],
		ImageURL:     fields[fieldImageURL],
	}

	if raw := fields[fieldCreatedAt]; raw != "" {
		var err error
		if p.CreatedAt, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return p, errors.Wrap(err, fieldCreatedAt)
		}
	}
	return p, nil
}
