package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddProductValidation(t *testing.T) {
	d := NewDirectory(nil)

	_, err := d.Add(AddProductInput{Name: "", Price: price("1.00"), Stock: 5})
	require.Error(t, err)

	_, err = d.Add(AddProductInput{Name: "Chips", Price: price("-0.01"), Stock: 5})
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = d.Add(AddProductInput{Name: "Chips", Price: price("1.00"), Stock: -1})
	require.Error(t, err)

	product, err := d.Add(AddProductInput{Name: "Chips", Price: price("0.75"), Stock: 20})
	require.NoError(t, err)
	require.NotEmpty(t, product.ID)
	require.Equal(t, 20, product.Stock)
	require.True(t, product.Price.Equal(price("0.75")))

	// Free products are allowed, price floor is zero.
	_, err = d.Add(AddProductInput{Name: "Water", Price: decimal.Zero, Stock: 0})
	require.NoError(t, err)
}

func TestRestock(t *testing.T) {
	d := NewDirectory(nil)
	product, err := d.Add(AddProductInput{Name: "Cola", Price: price("1.00"), Stock: 15})
	require.NoError(t, err)

	_, err = d.Restock(product.ID, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = d.Restock(product.ID, -3)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	updated, err := d.Restock(product.ID, 10)
	require.NoError(t, err)
	require.Equal(t, 25, updated.Stock)

	_, err = d.Restock("missing", 1)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestSetPriceReturnsOld(t *testing.T) {
	d := NewDirectory(nil)
	product, err := d.Add(AddProductInput{Name: "Bier", Price: price("0.75"), Stock: 30})
	require.NoError(t, err)

	old, err := d.SetPrice(product.ID, price("1.25"))
	require.NoError(t, err)
	require.True(t, old.Equal(price("0.75")))

	current, _ := d.Get(product.ID)
	require.True(t, current.Price.Equal(price("1.25")))

	_, err = d.SetPrice(product.ID, price("-1"))
	require.ErrorIs(t, err, ErrInvalidPrice)
}

func TestDecrementStockGuard(t *testing.T) {
	d := NewDirectory(nil)
	product, err := d.Add(AddProductInput{Name: "Chips", Price: price("0.75"), Stock: 2})
	require.NoError(t, err)

	require.ErrorIs(t, d.DecrementStock(product.ID, 3), ErrNegativeStock)
	require.NoError(t, d.DecrementStock(product.ID, 2))

	current, _ := d.Get(product.ID)
	require.Equal(t, 0, current.Stock)
	require.ErrorIs(t, d.DecrementStock(product.ID, 1), ErrNegativeStock)
}

func TestDelete(t *testing.T) {
	d := NewDirectory(nil)
	keep, err := d.Add(AddProductInput{Name: "Chips", Price: price("0.75"), Stock: 20})
	require.NoError(t, err)
	drop, err := d.Add(AddProductInput{Name: "Bier", Price: price("0.75"), Stock: 30})
	require.NoError(t, err)

	removed, err := d.Delete(drop.ID)
	require.NoError(t, err)
	require.Equal(t, "Bier", removed.Name)
	require.Len(t, d.List(), 1)

	_, ok := d.Get(keep.ID)
	require.True(t, ok)
	_, err = d.Delete(drop.ID)
	require.ErrorIs(t, err, ErrProductNotFound)
}
