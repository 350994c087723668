package till

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/standkas/standkas/internal/audit"
	"github.com/standkas/standkas/internal/auth"
	"github.com/standkas/standkas/internal/catalog"
	"github.com/standkas/standkas/internal/ledger"
	"github.com/standkas/standkas/internal/rbac"
	"github.com/standkas/standkas/internal/store"
)

// Till is the single-writer facade over the account directory, the product
// catalog, the audit log and the privileged session. Every mutating
// operation holds one mutex for the whole validate-and-apply span and
// persists synchronously before returning, so observable and persisted
// state never diverge by more than the in-flight operation.
type Till struct {
	mu     sync.Mutex
	logger *slog.Logger

	accounts *ledger.Directory
	products *catalog.Directory
	log      *audit.Log
	guard    *auth.Guard
	sessions *auth.SessionManager

	accountRepo *ledger.Repository
	productRepo *catalog.Repository
	logRepo     *audit.Repository
	lockRepo    *auth.LockRepository

	cfg Config
	now func() time.Time
}

// Open loads all persisted records and runs the legacy credential migration
// pass. A store that has never been written yields an empty till.
func Open(ctx context.Context, s store.Store, logger *slog.Logger, cfg Config) (*Till, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	t := &Till{
		logger:      logger,
		accountRepo: ledger.NewRepository(s),
		productRepo: catalog.NewRepository(s),
		logRepo:     audit.NewRepository(s),
		lockRepo:    auth.NewLockRepository(s),
		cfg:         cfg,
		now:         time.Now,
	}

	accounts, err := t.accountRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("till: load accounts: %w", err)
	}
	products, err := t.productRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("till: load products: %w", err)
	}
	entries, err := t.logRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("till: load logs: %w", err)
	}
	lockState, err := t.lockRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("till: load lock state: %w", err)
	}

	t.accounts = ledger.NewDirectory(accounts, cfg.MaxAccounts)
	t.products = catalog.NewDirectory(products)
	t.log = audit.NewLog(entries)
	t.guard = auth.NewGuard(cfg.LockMaxFails, cfg.LockCooldown, lockState)
	t.sessions = auth.NewSessionManager(cfg.IdleTimeout)

	if t.accounts.MigrateCredentials() {
		t.log.Append(audit.SystemActor, "PINs migrated to digests", decimal.Zero, t.now())
		logger.Info("credential migration applied")
		if err := t.saveAccounts(ctx); err != nil {
			return nil, err
		}
		if err := t.saveLogs(ctx); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Accounts lists the account directory, as shown on the home screen.
func (t *Till) Accounts() []ledger.Account {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.accounts.List()
}

// Products lists the catalog.
func (t *Till) Products() []catalog.Product {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.products.List()
}

// LogEntries returns the audit trail.
func (t *Till) LogEntries() []audit.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.log.Entries()
}

// LoginUser verifies an ordinary account PIN. No lockout applies and a
// failure is not audited; the caller keeps the returned account for the
// purchase that follows.
func (t *Till) LoginUser(ctx context.Context, accountID, pin string) (ledger.Account, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !auth.ValidPIN(pin) {
		return ledger.Account{}, auth.ErrInvalidPIN
	}
	account, ok := t.accounts.Get(accountID)
	if !ok {
		return ledger.Account{}, ledger.ErrAccountNotFound
	}
	if !auth.VerifyPIN(pin, account.Digest) {
		return ledger.Account{}, auth.ErrBadCredential
	}
	return account, nil
}

// LoginStaff opens the privileged session. The lockout guard is checked
// lazily before anything else; a wrong PIN counts a failure and is recorded
// in the audit log by name, never with the submitted PIN.
func (t *Till) LoginStaff(ctx context.Context, accountID, pin string) (*auth.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()

	if ok, remaining := t.guard.CheckAllowed(now); !ok {
		return nil, &LockedOutError{Remaining: remaining}
	}
	account, ok := t.accounts.Get(accountID)
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	if !account.Role.Staff() {
		return nil, ErrNotStaff
	}
	if !auth.ValidPIN(pin) {
		return nil, auth.ErrInvalidPIN
	}

	if !auth.VerifyPIN(pin, account.Digest) {
		locked := t.guard.RecordFailure(now)
		if err := t.saveLock(ctx); err != nil {
			return nil, err
		}
		t.log.Append(audit.SystemActor, fmt.Sprintf("failed admin login for %s", account.Name), decimal.Zero, now)
		if err := t.saveLogs(ctx); err != nil {
			return nil, err
		}
		if locked {
			t.logger.Warn("admin login locked", slog.String("account", account.Name))
		}
		return nil, auth.ErrBadCredential
	}

	t.guard.RecordSuccess()
	if err := t.saveLock(ctx); err != nil {
		return nil, err
	}
	session := t.sessions.Start(account.ID, account.Role, now)
	t.log.Append(account.Name, fmt.Sprintf("admin login as %s (%s)", account.Role, account.Name), decimal.Zero, now)
	if err := t.saveLogs(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout closes the privileged session, recording the logout.
func (t *Till) Logout(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sessions.Current(); !ok {
		return nil
	}
	t.log.Append(t.actor(), "admin logout", decimal.Zero, t.now())
	t.sessions.Logout()
	return t.saveLogs(ctx)
}

// Session exposes the current privileged session, if any.
func (t *Till) Session() (*auth.Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions.Current()
}

// TouchActivity refreshes the idle clock on detected user interaction while
// a privileged session is open.
func (t *Till) TouchActivity() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions.TouchActivity(t.now())
}

// CheckIdle is polled by the host on a fixed cadence while a session is
// open. An expired session is torn down here, after recording the
// auto-logout. In-flight operations are never aborted; expiry only prevents
// new ones.
func (t *Till) CheckIdle(ctx context.Context) (auth.IdleState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.sessions.CheckIdle(t.now())
	if state != auth.IdleExpired {
		return state, nil
	}
	t.log.Append(t.actor(), "admin auto-logout (idle)", decimal.Zero, t.now())
	t.sessions.Logout()
	return auth.IdleExpired, t.saveLogs(ctx)
}

// Purchase debits the account and decrements stock for every cart line,
// atomically, with one audit entry per purchased line. The account has been
// PIN-verified by LoginUser; no privileged session is required.
func (t *Till) Purchase(ctx context.Context, accountID string, cart ledger.Cart) (ledger.Receipt, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	account, ok := t.accounts.Get(accountID)
	if !ok {
		return ledger.Receipt{}, ledger.ErrAccountNotFound
	}
	receipt, err := t.accounts.Purchase(accountID, cart, t.products)
	if err != nil {
		return ledger.Receipt{}, err
	}
	now := t.now()
	for _, line := range receipt.Lines {
		t.log.Append(account.Name, fmt.Sprintf("%s (x%d)", line.Name, line.Qty), line.LineTotal, now)
	}
	if err := t.saveAll(ctx); err != nil {
		return ledger.Receipt{}, err
	}
	return receipt, nil
}

// CreateAccount adds a standard user account. Admin or co-admin.
func (t *Till) CreateAccount(ctx context.Context, input ledger.CreateAccountInput) (ledger.Account, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionCreateAccount); err != nil {
		return ledger.Account{}, err
	}
	account, err := t.accounts.Create(input)
	if err != nil {
		return ledger.Account{}, err
	}
	t.record(fmt.Sprintf("account created: %s (role: %s, type: %s)", account.Name, account.Role, account.Type), decimal.Zero)
	if err := t.saveAccounts(ctx); err != nil {
		return ledger.Account{}, err
	}
	return account, t.saveLogs(ctx)
}

// DeleteAccount removes an account. Admin only; the sole admin is protected.
func (t *Till) DeleteAccount(ctx context.Context, accountID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionDeleteAccount); err != nil {
		return err
	}
	removed, err := t.accounts.Delete(accountID)
	if err != nil {
		return err
	}
	t.record(fmt.Sprintf("account deleted: %s", removed.Name), decimal.Zero)
	if err := t.saveAccounts(ctx); err != nil {
		return err
	}
	return t.saveLogs(ctx)
}

// RenameAccount changes the display name. Admin only.
func (t *Till) RenameAccount(ctx context.Context, accountID, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionRenameAccount); err != nil {
		return err
	}
	old, account, err := t.accounts.Rename(accountID, name)
	if err != nil {
		return err
	}
	t.record(fmt.Sprintf("name changed: %s -> %s", old, account.Name), decimal.Zero)
	if err := t.saveAccounts(ctx); err != nil {
		return err
	}
	return t.saveLogs(ctx)
}

// ChangeAccountRole moves an account to a new role. Admin only; demoting the
// sole admin, including yourself, is refused at mutation time.
func (t *Till) ChangeAccountRole(ctx context.Context, accountID string, role rbac.Role) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionChangeRole); err != nil {
		return err
	}
	account, err := t.accounts.ChangeRole(accountID, role)
	if err != nil {
		return err
	}
	t.record(fmt.Sprintf("role changed: %s -> %s", account.Name, account.Role), decimal.Zero)
	if err := t.saveAccounts(ctx); err != nil {
		return err
	}
	return t.saveLogs(ctx)
}

// ChangeAccountType toggles between standard and guest. Admin or co-admin.
func (t *Till) ChangeAccountType(ctx context.Context, accountID string, accountType ledger.AccountType) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionChangeType); err != nil {
		return err
	}
	account, err := t.accounts.ChangeType(accountID, accountType)
	if err != nil {
		return err
	}
	t.record(fmt.Sprintf("type changed: %s -> %s", account.Name, account.Type), decimal.Zero)
	if err := t.saveAccounts(ctx); err != nil {
		return err
	}
	return t.saveLogs(ctx)
}

// ChangeAccountPIN re-hashes the account PIN. Admin only. The PIN itself is
// never logged.
func (t *Till) ChangeAccountPIN(ctx context.Context, accountID, pin string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionChangePIN); err != nil {
		return err
	}
	account, err := t.accounts.ChangeCredential(accountID, pin)
	if err != nil {
		return err
	}
	t.record(fmt.Sprintf("PIN changed for %s", account.Name), decimal.Zero)
	if err := t.saveAccounts(ctx); err != nil {
		return err
	}
	return t.saveLogs(ctx)
}

// AdjustBalance tops up an account by a positive amount. Admin only, no
// ceiling.
func (t *Till) AdjustBalance(ctx context.Context, accountID string, amount decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionAdjustBalance); err != nil {
		return err
	}
	account, err := t.accounts.Adjust(accountID, amount)
	if err != nil {
		return err
	}
	t.record(fmt.Sprintf("balance +%s for %s", amount.StringFixed(2), account.Name), amount)
	if err := t.saveAccounts(ctx); err != nil {
		return err
	}
	return t.saveLogs(ctx)
}

// AddProduct adds a catalog entry. Admin only.
func (t *Till) AddProduct(ctx context.Context, input catalog.AddProductInput) (catalog.Product, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionManageProducts); err != nil {
		return catalog.Product{}, err
	}
	product, err := t.products.Add(input)
	if err != nil {
		return catalog.Product{}, err
	}
	t.record(fmt.Sprintf("product added: %s (%s)", product.Name, product.Price.StringFixed(2)), decimal.Zero)
	if err := t.saveProducts(ctx); err != nil {
		return catalog.Product{}, err
	}
	return product, t.saveLogs(ctx)
}

// RestockProduct increases stock by a positive delta. Admin only.
func (t *Till) RestockProduct(ctx context.Context, productID string, delta int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionManageProducts); err != nil {
		return err
	}
	product, err := t.products.Restock(productID, delta)
	if err != nil {
		return err
	}
	t.record(fmt.Sprintf("stock +%d for %s", delta, product.Name), decimal.Zero)
	if err := t.saveProducts(ctx); err != nil {
		return err
	}
	return t.saveLogs(ctx)
}

// SetProductPrice updates a price, auditing old and new values. Admin only.
func (t *Till) SetProductPrice(ctx context.Context, productID string, price decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionManageProducts); err != nil {
		return err
	}
	old, err := t.products.SetPrice(productID, price)
	if err != nil {
		return err
	}
	product, _ := t.products.Get(productID)
	t.record(fmt.Sprintf("price changed: %s %s -> %s", product.Name, old.StringFixed(2), price.StringFixed(2)), decimal.Zero)
	if err := t.saveProducts(ctx); err != nil {
		return err
	}
	return t.saveLogs(ctx)
}

// DeleteProduct removes a catalog entry. Admin only.
func (t *Till) DeleteProduct(ctx context.Context, productID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionManageProducts); err != nil {
		return err
	}
	removed, err := t.products.Delete(productID)
	if err != nil {
		return err
	}
	t.record(fmt.Sprintf("product deleted: %s", removed.Name), decimal.Zero)
	if err := t.saveProducts(ctx); err != nil {
		return err
	}
	return t.saveLogs(ctx)
}

// ExportLogCSV writes the audit trail as CSV. Admin or co-admin; the export
// itself is audited.
func (t *Till) ExportLogCSV(ctx context.Context, w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionExportLog); err != nil {
		return err
	}
	if err := t.log.ExportCSV(w); err != nil {
		return err
	}
	t.record("log exported (CSV)", decimal.Zero)
	return t.saveLogs(ctx)
}

// ClearLog truncates the audit trail. Admin only. One entry recording the
// clearing survives the truncation.
func (t *Till) ClearLog(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.authorize(rbac.ActionClearLog); err != nil {
		return err
	}
	actor := t.actor()
	t.log.Clear(actor, t.now())
	t.sessions.TouchActivity(t.now())
	return t.saveLogs(ctx)
}

// authorize gates a privileged operation against the current session role.
// A denial mutates nothing and is not audited.
func (t *Till) authorize(action rbac.Action) error {
	session, ok := t.sessions.Current()
	if !ok {
		return ErrNoSession
	}
	if !rbac.Allowed(session.Role, action) {
		return ErrPermissionDenied
	}
	return nil
}

// record appends an audit entry for the session actor and refreshes the
// idle clock, as every authorized administrative operation must.
func (t *Till) record(description string, amount decimal.Decimal) {
	now := t.now()
	t.log.Append(t.actor(), description, amount, now)
	t.sessions.TouchActivity(now)
}

// actor resolves the audit actor name: the session account, or SYSTEM when
// no session is active.
func (t *Till) actor() string {
	session, ok := t.sessions.Current()
	if !ok {
		return audit.SystemActor
	}
	if account, found := t.accounts.Get(session.AccountID); found {
		return account.Name
	}
	return audit.SystemActor
}

func (t *Till) saveAccounts(ctx context.Context) error {
	return t.accountRepo.Save(ctx, t.accounts.List())
}

func (t *Till) saveProducts(ctx context.Context) error {
	return t.productRepo.Save(ctx, t.products.List())
}

func (t *Till) saveLogs(ctx context.Context) error {
	return t.logRepo.Save(ctx, t.log.Entries())
}

func (t *Till) saveLock(ctx context.Context) error {
	return t.lockRepo.Save(ctx, t.guard.State())
}

func (t *Till) saveAll(ctx context.Context) error {
	if err := t.saveAccounts(ctx); err != nil {
		return err
	}
	if err := t.saveProducts(ctx); err != nil {
		return err
	}
	return t.saveLogs(ctx)
}
