package audit

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemActor names entries recorded outside any session, such as startup
// migrations.
const SystemActor = "SYSTEM"

// Entry is one append-only record of a state-changing action. Actor is a
// plain name string: renaming or deleting an account leaves historical
// entries intact.
type Entry struct {
	ID          string          `json:"id"`
	Actor       string          `json:"actor"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	At          time.Time       `json:"at"`
}
