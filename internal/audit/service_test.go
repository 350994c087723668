package audit

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAppendKeepsOrder(t *testing.T) {
	log := NewLog(nil)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	first := log.Append("Beheer", "admin login as admin (Beheer)", decimal.Zero, at)
	second := log.Append("Jan", "Cola (x2)", decimal.RequireFromString("2.00"), at.Add(time.Minute))

	require.NotEmpty(t, first.ID)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, 2, log.Len())

	entries := log.Entries()
	require.Equal(t, "Beheer", entries[0].Actor)
	require.Equal(t, "Jan", entries[1].Actor)
	require.True(t, entries[1].At.After(entries[0].At))
}

func TestEntriesReturnsCopy(t *testing.T) {
	log := NewLog(nil)
	log.Append(SystemActor, "seeded default data", decimal.Zero, time.Now())

	entries := log.Entries()
	entries[0].Actor = "mutated"
	require.Equal(t, SystemActor, log.Entries()[0].Actor)
}

func TestClearLeavesSingleTrace(t *testing.T) {
	log := NewLog(nil)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		log.Append("Jan", "Cola (x1)", decimal.RequireFromString("1.00"), at)
	}

	log.Clear("Beheer", at.Add(time.Hour))

	require.Equal(t, 1, log.Len())
	entry := log.Entries()[0]
	require.Equal(t, "Beheer", entry.Actor)
	require.Equal(t, "log cleared", entry.Description)
	require.True(t, entry.Amount.IsZero())
}

func TestExportCSV(t *testing.T) {
	log := NewLog(nil)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	log.Append("Beheer", `renamed "Jan, the first" -> Jan`, decimal.Zero, at)
	log.Append("Jan", "Chips (x3)", decimal.RequireFromString("2.25"), at.Add(time.Minute))

	var buf bytes.Buffer
	require.NoError(t, log.ExportCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{"Actor", "Description", "Amount", "Time"}, records[0])
	// Embedded commas and quotes survive the round trip.
	require.Equal(t, []string{"Beheer", `renamed "Jan, the first" -> Jan`, "0.00", "2024-03-01T12:00:00Z"}, records[1])
	require.Equal(t, []string{"Jan", "Chips (x3)", "2.25", "2024-03-01T12:01:00Z"}, records[2])
}

func TestExportCSVEmptyLog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLog(nil).ExportCSV(&buf))
	require.Equal(t, "Actor,Description,Amount,Time\n", buf.String())
}
