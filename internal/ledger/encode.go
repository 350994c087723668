package ledger

import "github.com/shopspring/decimal"

func init() {
	// Balances, prices and log amounts serialize as plain JSON numbers,
	// matching the persisted record shape and the bulk interchange format.
	decimal.MarshalJSONWithoutQuotes = true
}
