package till

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/standkas/standkas/internal/audit"
	"github.com/standkas/standkas/internal/auth"
	"github.com/standkas/standkas/internal/catalog"
	"github.com/standkas/standkas/internal/ledger"
	"github.com/standkas/standkas/internal/rbac"
)

// exportPayload is the bulk interchange format.
type exportPayload struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	Accounts   []ledger.Account  `json:"accounts"`
	Products   []catalog.Product `json:"products"`
	Logs       []audit.Entry     `json:"logs"`
}

// importEnvelope defers decoding so the shape can be validated before any
// state is replaced.
type importEnvelope struct {
	Accounts json.RawMessage `json:"accounts"`
	Products json.RawMessage `json:"products"`
	Logs     json.RawMessage `json:"logs"`
}

// ExportJSON writes the full state as a versioned JSON document. Admin only.
// Credential digests are exported verbatim. The export entry itself is
// recorded after the payload is written, so the file does not contain it.
func (t *Till) ExportJSON(ctx context.Context, w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionExportData); err != nil {
		return err
	}
	payload := exportPayload{
		Version:    Version,
		ExportedAt: t.now().UTC(),
		Accounts:   t.accounts.List(),
		Products:   t.products.List(),
		Logs:       t.log.Entries(),
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("till: export: %w", err)
	}
	t.record("data exported (JSON)", decimal.Zero)
	return t.saveLogs(ctx)
}

// ImportJSON replaces the full state from a bulk JSON document. Admin or
// co-admin. The payload must carry array-shaped accounts, products and logs;
// otherwise nothing is applied. The legacy credential migration runs after
// the swap, exactly as on load.
func (t *Till) ImportJSON(ctx context.Context, r io.Reader) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionImportData); err != nil {
		return err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("till: import: %w", err)
	}
	var envelope importEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ErrMalformedShape
	}
	accounts, err := decodeArray[ledger.Account](envelope.Accounts)
	if err != nil {
		return err
	}
	products, err := decodeArray[catalog.Product](envelope.Products)
	if err != nil {
		return err
	}
	entries, err := decodeArray[audit.Entry](envelope.Logs)
	if err != nil {
		return err
	}

	t.accounts.Replace(accounts)
	t.products.Replace(products)
	t.log.Replace(entries)
	if t.accounts.MigrateCredentials() {
		t.log.Append(audit.SystemActor, "PINs migrated to digests", decimal.Zero, t.now())
	}
	t.record("data imported (JSON)", decimal.Zero)
	return t.saveAll(ctx)
}

// Reset restores the factory accounts and products and starts a fresh log.
// Admin only. The reset entry is appended after the wipe so one trace
// survives, like ClearLog.
func (t *Till) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionResetData); err != nil {
		return err
	}
	actor := t.actor()
	t.accounts.Replace(seedAccounts())
	t.products.Replace(seedProducts())
	t.log.Replace(nil)
	t.log.Append(actor, "data reset to defaults", decimal.Zero, t.now())
	t.sessions.TouchActivity(t.now())
	return t.saveAll(ctx)
}

func decodeArray[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 {
		return nil, ErrMalformedShape
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, ErrMalformedShape
	}
	// json.Unmarshal accepts "null" for a slice; the shape requires arrays.
	if string(raw) == "null" {
		return nil, ErrMalformedShape
	}
	return out, nil
}

func seedAccounts() []ledger.Account {
	return []ledger.Account{
		seedAccount("Jan", "1234", "40.00", ledger.TypeStandard, rbac.RoleUser),
		seedAccount("Piet", "5678", "5.00", ledger.TypeGuest, rbac.RoleUser),
		seedAccount("Beheer", "9999", "0.00", ledger.TypeStandard, rbac.RoleAdmin),
	}
}

func seedAccount(name, pin, balance string, accountType ledger.AccountType, role rbac.Role) ledger.Account {
	digest, _ := auth.HashPIN(pin)
	return ledger.Account{
		ID:      uuid.NewString(),
		Name:    name,
		Digest:  digest,
		Balance: decimal.RequireFromString(balance),
		Type:    accountType,
		Role:    role,
	}
}

func seedProducts() []catalog.Product {
	return []catalog.Product{
		{ID: uuid.NewString(), Name: "Chips", Price: decimal.RequireFromString("0.75"), Stock: 20},
		{ID: uuid.NewString(), Name: "Bier", Price: decimal.RequireFromString("0.75"), Stock: 30},
		{ID: uuid.NewString(), Name: "Cola", Price: decimal.RequireFromString("1.00"), Stock: 15},
	}
}

// SeedDefaults populates an empty till with the factory data without
// requiring a session. Used on first boot.
func (t *Till) SeedDefaults(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.accounts.List()) > 0 || len(t.products.List()) > 0 {
		return nil
	}
	t.accounts.Replace(seedAccounts())
	t.products.Replace(seedProducts())
	t.log.Append(audit.SystemActor, "seeded default data", decimal.Zero, t.now())
	return t.saveAll(ctx)
}
