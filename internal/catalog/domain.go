package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Product is one entry of the product directory.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// ErrProductNotFound indicates an unknown product ID.
var ErrProductNotFound = errors.New("catalog: product not found")

// ErrInvalidPrice indicates a negative price.
var ErrInvalidPrice = errors.New("catalog: price must be >= 0")

// ErrInvalidStock indicates a negative stock count.
var ErrInvalidStock = errors.New("catalog: stock must be a non-negative integer")

// ErrInvalidQuantity indicates a non-positive quantity delta.
var ErrInvalidQuantity = errors.New("catalog: quantity must be positive")

// ErrNegativeStock is returned when a movement would take stock below zero.
var ErrNegativeStock = errors.New("catalog: negative stock not allowed")
