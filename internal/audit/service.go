package audit

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Log is the append-only audit trail. Entries are kept in insertion order,
// which is chronological order.
type Log struct {
	entries []Entry
}

// NewLog builds a log over the loaded entries.
func NewLog(entries []Entry) *Log {
	return &Log{entries: entries}
}

// Append records one action. Amount may be zero for actions without a
// monetary component.
func (l *Log) Append(actor, description string, amount decimal.Decimal, at time.Time) Entry {
	entry := Entry{
		ID:          uuid.NewString(),
		Actor:       actor,
		Description: description,
		Amount:      amount,
		At:          at,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// Entries returns a copy of all entries.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Clear truncates the log, then records the clearing itself, so exactly one
// trace of the action survives.
func (l *Log) Clear(actor string, at time.Time) {
	l.entries = nil
	l.Append(actor, "log cleared", decimal.Zero, at)
}

// Replace swaps the whole log, used by import and reset.
func (l *Log) Replace(entries []Entry) {
	l.entries = make([]Entry, len(entries))
	copy(l.entries, entries)
}

// ExportCSV writes all entries as RFC 4180 CSV with an Actor, Description,
// Amount, Time header. encoding/csv handles quoting of embedded commas,
// quotes and newlines.
func (l *Log) ExportCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Actor", "Description", "Amount", "Time"}); err != nil {
		return err
	}
	for _, entry := range l.entries {
		record := []string{
			entry.Actor,
			entry.Description,
			entry.Amount.StringFixed(2),
			entry.At.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
