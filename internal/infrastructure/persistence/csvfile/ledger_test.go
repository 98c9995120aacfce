package csvfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_gateway-go/internal/domain/transaction"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/infrastructure/persistence/csvfile"
)

func tempMirror(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "transaction_history.csv")
}

func record(id string, status transaction.Status) *transaction.Record {
	return transaction.New(
		id,
		"Credit Card",
		decimal.RequireFromString("1000"),
		decimal.RequireFromString("20.00"),
		status,
		"Credit Card - **** **** **** 1111 | Ana Souza",
		time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC),
	)
}

func TestAppend_WritesHeaderOnlyWhenFileIsEmpty(t *testing.T) {
	path := tempMirror(t)

	ledger, err := csvfile.Open(path)
	require.NoError(t, err)

	require.NoError(t, ledger.Append(record("TXN1", transaction.StatusSuccess)))
	require.NoError(t, ledger.Append(record("TXN2", transaction.StatusFailed)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "TransactionID,PaymentMethod,Amount,Fee,TotalAmount,Status,Timestamp,Details", lines[0])
	require.Contains(t, lines[1], "TXN1")
	require.Contains(t, lines[2], "TXN2")
}

func TestOpen_ReloadsAppendedRecords(t *testing.T) {
	path := tempMirror(t)

	ledger, err := csvfile.Open(path)
	require.NoError(t, err)
	require.NoError(t, ledger.Append(record("TXN1", transaction.StatusSuccess)))

	reloaded, err := csvfile.Open(path)
	require.NoError(t, err)

	records, err := reloaded.All()
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	require.Equal(t, "TXN1", got.ID)
	require.Equal(t, "Credit Card", got.Method)
	require.Equal(t, "1000.00", got.Amount.StringFixed(2))
	require.Equal(t, "20.00", got.Fee.StringFixed(2))
	require.Equal(t, "1020.00", got.Total.StringFixed(2))
	require.Equal(t, transaction.StatusSuccess, got.Status)
}

func TestOpen_MissingFileIsEmptyLedger(t *testing.T) {
	ledger, err := csvfile.Open(tempMirror(t))
	require.NoError(t, err)

	records, err := ledger.All()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestOpen_SkipsMalformedLines(t *testing.T) {
	path := tempMirror(t)

	content := strings.Join([]string{
		"TransactionID,PaymentMethod,Amount,Fee,TotalAmount,Status,Timestamp,Details",
		"TXN1,Credit Card,1000.00,20.00,1020.00,SUCCESS,2026-08-31 14:30:00,Credit Card - **** 1111",
		"garbage line",
		"TXN2,UPI,not-a-number,0.00,500.00,SUCCESS,2026-08-31 14:31:00,UPI - user@paytm",
		"TXN3,UPI,500.00,0.00,500.00,SUCCESS,2026-08-31 14:32:00,UPI - user@paytm",
	}, "\n") + "\n"

	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ledger, err := csvfile.Open(path)
	require.NoError(t, err)

	records, err := ledger.All()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "TXN1", records[0].ID)
	require.Equal(t, "TXN3", records[1].ID)
}

func TestAppend_DetailWithCommaSurvivesReload(t *testing.T) {
	path := tempMirror(t)

	ledger, err := csvfile.Open(path)
	require.NoError(t, err)

	rec := record("TXN1", transaction.StatusSuccess)
	rec.Details = "Net Banking - HDFC, Mumbai | A/C: ****5678"
	require.NoError(t, ledger.Append(rec))

	reloaded, err := csvfile.Open(path)
	require.NoError(t, err)

	records, err := reloaded.All()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Net Banking - HDFC, Mumbai | A/C: ****5678", records[0].Details)
}

func TestQueries_CountAndRevenueCoverSuccessOnly(t *testing.T) {
	ledger, err := csvfile.Open(tempMirror(t))
	require.NoError(t, err)

	require.NoError(t, ledger.Append(record("TXN1", transaction.StatusSuccess)))
	require.NoError(t, ledger.Append(record("TXN2", transaction.StatusFailed)))
	require.NoError(t, ledger.Append(record("TXN3", transaction.StatusSuccess)))

	count, err := ledger.SuccessCount()
	require.NoError(t, err)
	require.Equal(t, 2, count)

	// revenue sums amounts, not totals
	revenue, err := ledger.TotalRevenue()
	require.NoError(t, err)
	require.Equal(t, "2000.00", revenue.StringFixed(2))
}
