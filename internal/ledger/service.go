package ledger

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/standkas/standkas/internal/auth"
	"github.com/standkas/standkas/internal/catalog"
	"github.com/standkas/standkas/internal/rbac"
)

var validate = validator.New()

// CreateAccountInput carries the fields for a new account. New accounts
// always start as standard users; role and type changes are separate,
// admin-gated operations.
type CreateAccountInput struct {
	Name           string `validate:"required"`
	PIN            string `validate:"required,len=4,numeric"`
	InitialBalance decimal.Decimal
}

// Cart maps product IDs to requested quantities.
type Cart map[string]int

// Directory owns the in-memory account list. It is not safe for concurrent
// use; the till serializes access.
type Directory struct {
	accounts    []Account
	maxAccounts int
}

// NewDirectory builds a directory over the loaded accounts. maxAccounts
// bounds Create; existing directories above the bound still load.
func NewDirectory(accounts []Account, maxAccounts int) *Directory {
	return &Directory{accounts: accounts, maxAccounts: maxAccounts}
}

// List returns a copy of all accounts in insertion order.
func (d *Directory) List() []Account {
	out := make([]Account, len(d.accounts))
	copy(out, d.accounts)
	return out
}

// Get looks up an account by ID.
func (d *Directory) Get(id string) (Account, bool) {
	for _, a := range d.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// AdminCount returns the number of accounts holding the admin role.
func (d *Directory) AdminCount() int {
	n := 0
	for _, a := range d.accounts {
		if a.Role == rbac.RoleAdmin {
			n++
		}
	}
	return n
}

// Create validates and appends a new account with role user, type standard.
func (d *Directory) Create(input CreateAccountInput) (Account, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validate.Struct(input); err != nil {
		return Account{}, fmt.Errorf("ledger: %w", err)
	}
	if len(d.accounts) >= d.maxAccounts {
		return Account{}, ErrDirectoryFull
	}
	digest, err := auth.HashPIN(input.PIN)
	if err != nil {
		return Account{}, err
	}
	account := Account{
		ID:      uuid.NewString(),
		Name:    input.Name,
		Digest:  digest,
		Balance: input.InitialBalance,
		Type:    TypeStandard,
		Role:    rbac.RoleUser,
	}
	d.accounts = append(d.accounts, account)
	return account, nil
}

// Purchase validates the whole cart against current stock and the account's
// balance floor, then applies the debit and all stock decrements together.
// No entity changes unless every line passes, so a failure anywhere leaves
// balances and stock exactly as they were.
func (d *Directory) Purchase(accountID string, cart Cart, products *catalog.Directory) (Receipt, error) {
	account := d.find(accountID)
	if account == nil {
		return Receipt{}, ErrAccountNotFound
	}

	// Phase one: validate every line and price the cart. Lines follow the
	// catalog's insertion order so receipts and audit entries are stable.
	var lines []ReceiptLine
	total := decimal.Zero
	for _, p := range products.List() {
		qty, ok := cart[p.ID]
		if !ok || qty == 0 {
			continue
		}
		if qty < 0 {
			return Receipt{}, catalog.ErrInvalidQuantity
		}
		if qty > p.Stock {
			return Receipt{}, fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		lines = append(lines, ReceiptLine{
			ProductID: p.ID,
			Name:      p.Name,
			Qty:       qty,
			UnitPrice: p.Price,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	if len(lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}
	for id := range cart {
		if _, ok := products.Get(id); !ok {
			return Receipt{}, catalog.ErrProductNotFound
		}
	}
	newBalance := account.Balance.Sub(total)
	if newBalance.LessThan(account.Type.Floor()) {
		return Receipt{}, ErrBalanceFloor
	}

	// Phase two: apply. Every line was validated against live stock above.
	account.Balance = newBalance
	for _, line := range lines {
		if err := products.DecrementStock(line.ProductID, line.Qty); err != nil {
			return Receipt{}, err
		}
	}
	return Receipt{Lines: lines, Total: total}, nil
}

// Adjust unconditionally increases the balance by a positive amount. There
// is no ceiling.
func (d *Directory) Adjust(accountID string, amount decimal.Decimal) (Account, error) {
	if !amount.IsPositive() {
		return Account{}, ErrInvalidAmount
	}
	account := d.find(accountID)
	if account == nil {
		return Account{}, ErrAccountNotFound
	}
	account.Balance = account.Balance.Add(amount)
	return *account, nil
}

// ChangeCredential re-hashes the PIN and discards any legacy plaintext.
func (d *Directory) ChangeCredential(accountID, pin string) (Account, error) {
	digest, err := auth.HashPIN(pin)
	if err != nil {
		return Account{}, err
	}
	account := d.find(accountID)
	if account == nil {
		return Account{}, ErrAccountNotFound
	}
	account.Digest = digest
	account.LegacyPIN = ""
	return *account, nil
}

// ChangeRole moves the account to newRole. The last-admin invariant is
// re-checked here, immediately before mutating, since the directory may have
// changed since the caller last looked.
func (d *Directory) ChangeRole(accountID string, newRole rbac.Role) (Account, error) {
	if !newRole.Valid() {
		return Account{}, ErrInvalidRole
	}
	account := d.find(accountID)
	if account == nil {
		return Account{}, ErrAccountNotFound
	}
	if !rbac.CanChangeRole(account.Role, newRole, d.AdminCount()) {
		return Account{}, ErrLastAdmin
	}
	account.Role = newRole
	return *account, nil
}

// ChangeType flips the account between standard and guest. The new floor
// applies to subsequent purchases only; an existing negative balance on a
// fresh guest is left as-is, matching historical behavior.
func (d *Directory) ChangeType(accountID string, newType AccountType) (Account, error) {
	if !newType.Valid() {
		return Account{}, ErrInvalidType
	}
	account := d.find(accountID)
	if account == nil {
		return Account{}, ErrAccountNotFound
	}
	account.Type = newType
	return *account, nil
}

// Rename updates the display name and returns the previous one. Historical
// log entries keep the old name; audit references accounts by name string,
// not identity.
func (d *Directory) Rename(accountID, name string) (old string, account Account, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", Account{}, ErrEmptyName
	}
	target := d.find(accountID)
	if target == nil {
		return "", Account{}, ErrAccountNotFound
	}
	old = target.Name
	target.Name = name
	return old, *target, nil
}

// Delete removes the account. The last-admin invariant is re-checked at
// mutation time.
func (d *Directory) Delete(accountID string) (Account, error) {
	for i := range d.accounts {
		if d.accounts[i].ID == accountID {
			if !rbac.CanDelete(d.accounts[i].Role, d.AdminCount()) {
				return Account{}, ErrLastAdmin
			}
			removed := d.accounts[i]
			d.accounts = append(d.accounts[:i], d.accounts[i+1:]...)
			return removed, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

// MigrateCredentials runs the legacy PIN migration over the whole directory
// and backfills missing digests with the default PIN. Safe to call on every
// load. Reports whether anything changed.
func (d *Directory) MigrateCredentials() bool {
	changed := false
	for i := range d.accounts {
		if digest, ok := auth.MigrateLegacy(d.accounts[i].Digest, d.accounts[i].LegacyPIN); ok {
			d.accounts[i].Digest = digest
			d.accounts[i].LegacyPIN = ""
			changed = true
		}
		if d.accounts[i].Digest == "" {
			digest, err := auth.HashPIN("0000")
			if err == nil {
				d.accounts[i].Digest = digest
				changed = true
			}
		}
		if d.accounts[i].ID == "" {
			d.accounts[i].ID = uuid.NewString()
			changed = true
		}
	}
	return changed
}

// Replace swaps the whole directory, used by import and reset.
func (d *Directory) Replace(accounts []Account) {
	d.accounts = make([]Account, len(accounts))
	copy(d.accounts, accounts)
}

func (d *Directory) find(id string) *Account {
	for i := range d.accounts {
		if d.accounts[i].ID == id {
			return &d.accounts[i]
		}
	}
	return nil
}
