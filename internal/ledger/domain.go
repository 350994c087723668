package ledger

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/standkas/standkas/internal/rbac"
)

// AccountType determines the balance floor of an account.
type AccountType string

const (
	// TypeStandard accounts may run a tab down to -10.00.
	TypeStandard AccountType = "standard"
	// TypeGuest accounts may never go below zero.
	TypeGuest AccountType = "guest"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == TypeStandard || t == TypeGuest
}

// Floor returns the minimum permissible balance for the type.
func (t AccountType) Floor() decimal.Decimal {
	if t == TypeGuest {
		return decimal.Zero
	}
	return standardFloor
}

var standardFloor = decimal.NewFromInt(-10)

// Account is one entry of the account directory. LegacyPIN only appears in
// old exports and is cleared by the credential migration; the digest is the
// only PIN representation that persists.
type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Digest    string          `json:"pinHash,omitempty"`
	LegacyPIN string          `json:"pin,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Type      AccountType     `json:"type"`
	Role      rbac.Role       `json:"role"`
}

// Receipt summarises a completed purchase.
type Receipt struct {
	Lines []ReceiptLine
	Total decimal.Decimal
}

// ReceiptLine is one purchased cart line.
type ReceiptLine struct {
	ProductID string
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

var (
	// ErrAccountNotFound indicates an unknown account ID.
	ErrAccountNotFound = errors.New("ledger: account not found")
	// ErrDirectoryFull indicates the account maximum has been reached.
	ErrDirectoryFull = errors.New("ledger: account directory full")
	// ErrLastAdmin protects the sole remaining admin from deletion or
	// demotion.
	ErrLastAdmin = errors.New("ledger: at least one admin must remain")
	// ErrEmptyName rejects blank account names.
	ErrEmptyName = errors.New("ledger: name must not be empty")
	// ErrInvalidAmount rejects non-positive adjustment amounts.
	ErrInvalidAmount = errors.New("ledger: amount must be positive")
	// ErrInvalidRole rejects unknown roles.
	ErrInvalidRole = errors.New("ledger: invalid role")
	// ErrInvalidType rejects unknown account types.
	ErrInvalidType = errors.New("ledger: invalid account type")
	// ErrEmptyCart rejects a checkout with no selected items.
	ErrEmptyCart = errors.New("ledger: cart is empty")
	// ErrInsufficientStock indicates a cart line exceeding current stock.
	ErrInsufficientStock = errors.New("ledger: insufficient stock")
	// ErrBalanceFloor indicates a purchase would breach the account-type
	// balance floor.
	ErrBalanceFloor = errors.New("ledger: balance floor violated")
)
