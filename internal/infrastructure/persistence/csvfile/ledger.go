package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_gateway-go/internal/domain/transaction"
)

var header = []string{
	"TransactionID",
	"PaymentMethod",
	"Amount",
	"Fee",
	"TotalAmount",
	"Status",
	"Timestamp",
	"Details",
}

// Ledger owns the ordered in-memory history and its append-only CSV
// mirror. All access goes through one mutex so concurrent attempts cannot
// interleave file writes.
type Ledger struct {
	mu      sync.Mutex
	path    string
	records []*transaction.Record
}

// Open loads the mirror at path if it exists. Malformed lines are skipped;
// a corrupt file never fails the process, only an unreadable one does.
func Open(path string) (*Ledger, error) {
	l := &Ledger{path: path}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return l, nil
		}
		return nil, fmt.Errorf("opening transaction mirror: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}

		rec, ok := parseRow(row)
		if !ok {
			continue
		}
		l.records = append(l.records, rec)
	}

	return l, nil
}

// Append adds the record to the in-memory list and mirrors it to the file,
// writing the header first iff the file is currently empty. The in-memory
// append holds even when the file write fails.
func (l *Ledger) Append(rec *transaction.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, rec)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening transaction mirror: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stating transaction mirror: %w", err)
	}

	w := csv.NewWriter(f)

	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("writing mirror header: %w", err)
		}
	}

	if err := w.Write(formatRow(rec)); err != nil {
		return fmt.Errorf("writing mirror row: %w", err)
	}

	w.Flush()
	return w.Error()
}

func (l *Ledger) All() ([]*transaction.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*transaction.Record, len(l.records))
	copy(out, l.records)
	return out, nil
}

func (l *Ledger) SuccessCount() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for _, rec := range l.records {
		if rec.Status == transaction.StatusSuccess {
			count++
		}
	}
	return count, nil
}

// TotalRevenue sums the amounts, not the totals, of successful records.
func (l *Ledger) TotalRevenue() (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sum := decimal.Zero
	for _, rec := range l.records {
		if rec.Status == transaction.StatusSuccess {
			sum = sum.Add(rec.Amount)
		}
	}
	return sum, nil
}

func formatRow(rec *transaction.Record) []string {
	return []string{
		rec.ID,
		rec.Method,
		rec.Amount.StringFixed(2),
		rec.Fee.StringFixed(2),
		rec.Total.StringFixed(2),
		string(rec.Status),
		rec.Timestamp.Format(transaction.TimeLayout),
		rec.Details,
	}
}

func parseRow(row []string) (*transaction.Record, bool) {
	if len(row) != len(header) {
		return nil, false
	}
	if row[0] == header[0] {
		return nil, false
	}

	amount, err := decimal.NewFromString(row[2])
	if err != nil {
		return nil, false
	}
	fee, err := decimal.NewFromString(row[3])
	if err != nil {
		return nil, false
	}
	total, err := decimal.NewFromString(row[4])
	if err != nil {
		return nil, false
	}

	status := transaction.Status(row[5])
	if status != transaction.StatusSuccess && status != transaction.StatusFailed {
		return nil, false
	}

	ts, err := time.Parse(transaction.TimeLayout, row[6])
	if err != nil {
		return nil, false
	}

	return &transaction.Record{
		ID:        row[0],
		Method:    row[1],
		Amount:    amount,
		Fee:       fee,
		Total:     total,
		Status:    status,
		Timestamp: ts,
		Details:   row[7],
	}, true
}
