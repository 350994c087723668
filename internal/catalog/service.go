package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// AddProductInput carries the fields for a new product.
type AddProductInput struct {
	Name  string `validate:"required"`
	Price decimal.Decimal
	Stock int `validate:"gte=0"`
}

// Directory owns the in-memory product list. It is not safe for concurrent
// use; the till serializes access.
type Directory struct {
	products []Product
}

// NewDirectory builds a directory over the loaded products.
func NewDirectory(products []Product) *Directory {
	return &Directory{products: products}
}

// List returns a copy of all products in insertion order.
func (d *Directory) List() []Product {
	out := make([]Product, len(d.products))
	copy(out, d.products)
	return out
}

// Get looks up a product by ID.
func (d *Directory) Get(id string) (Product, bool) {
	for _, p := range d.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Add validates and appends a new product.
func (d *Directory) Add(input AddProductInput) (Product, error) {
	if err := validate.Struct(input); err != nil {
		return Product{}, fmt.Errorf("catalog: %w", err)
	}
	if input.Price.IsNegative() {
		return Product{}, ErrInvalidPrice
	}
	if input.Stock < 0 {
		return Product{}, ErrInvalidStock
	}
	product := Product{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Price: input.Price,
		Stock: input.Stock,
	}
	d.products = append(d.products, product)
	return product, nil
}

// Restock increases stock by delta, which must be positive.
func (d *Directory) Restock(id string, delta int) (Product, error) {
	if delta <= 0 {
		return Product{}, ErrInvalidQuantity
	}
	for i := range d.products {
		if d.products[i].ID == id {
			d.products[i].Stock += delta
			return d.products[i], nil
		}
	}
	return Product{}, ErrProductNotFound
}

// SetPrice updates the price and returns the previous one for the audit
// trail.
func (d *Directory) SetPrice(id string, price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	for i := range d.products {
		if d.products[i].ID == id {
			old := d.products[i].Price
			d.products[i].Price = price
			return old, nil
		}
	}
	return decimal.Zero, ErrProductNotFound
}

// Delete removes a product and returns the removed record.
func (d *Directory) Delete(id string) (Product, error) {
	for i := range d.products {
		if d.products[i].ID == id {
			removed := d.products[i]
			d.products = append(d.products[:i], d.products[i+1:]...)
			return removed, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// DecrementStock removes qty units, refusing to go below zero. Used by the
// purchase path after validation.
func (d *Directory) DecrementStock(id string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range d.products {
		if d.products[i].ID == id {
			if qty > d.products[i].Stock {
				return ErrNegativeStock
			}
			d.products[i].Stock -= qty
			return nil
		}
	}
	return ErrProductNotFound
}

// Replace swaps the whole directory, used by import and reset.
func (d *Directory) Replace(products []Product) {
	d.products = make([]Product, len(products))
	copy(d.products, products)
}
