package product

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product is a catalog entry shown as a card on the screen.
//
// Price and OfferedPrice hold the text the user entered, unvalidated.
type Product struct {
	ID           string
	Name         string
	Price        string
	OfferedPrice string
	ImageURL     string
	CreatedAt    time.Time
}

// Amount returns s as a decimal when it is a plain number. Free-form
// prices such as "Rs 499" or "" are not valid amounts.
func Amount(s string) decimal.NullDecimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Repository is the record store the catalog is synchronised against.
//
// Create assigns ID and CreatedAt. Update overwrites every field of an
// existing product and returns ErrNotFound for an unknown ID. Delete of an
// unknown ID is not an error.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
