package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_gateway-go/internal/domain/transaction"
)

// TransactionRepository is the sqlite-backed transaction.Store. Amounts are
// stored as decimal strings so nothing is lost to float columns.
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Append(rec *transaction.Record) error {
	_, err := r.db.Exec(
		`INSERT INTO transactions
		 (id, method, amount, fee, total, status, created_at, details)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Method,
		rec.Amount.StringFixed(2),
		rec.Fee.StringFixed(2),
		rec.Total.StringFixed(2),
		string(rec.Status),
		rec.Timestamp.Format(transaction.TimeLayout),
		rec.Details,
	)
	return err
}

func (r *TransactionRepository) All() ([]*transaction.Record, error) {
	rows, err := r.db.Query(
		`SELECT id, method, amount, fee, total, status, created_at, details
		 FROM transactions
		 ORDER BY rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*transaction.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *TransactionRepository) SuccessCount() (int, error) {
	row := r.db.QueryRow(
		`SELECT COUNT(*) FROM transactions WHERE status = ?`,
		string(transaction.StatusSuccess),
	)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *TransactionRepository) TotalRevenue() (decimal.Decimal, error) {
	rows, err := r.db.Query(
		`SELECT amount FROM transactions WHERE status = ?`,
		string(transaction.StatusSuccess),
	)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	sum := decimal.Zero

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, err
		}

		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("corrupt amount %q: %w", raw, err)
		}

		sum = sum.Add(amount)
	}

	return sum, rows.Err()
}

func scanRecord(rows *sql.Rows) (*transaction.Record, error) {
	var rec transaction.Record
	var amount, fee, total, status, createdAt string

	if err := rows.Scan(
		&rec.ID,
		&rec.Method,
		&amount,
		&fee,
		&total,
		&status,
		&createdAt,
		&rec.Details,
	); err != nil {
		return nil, err
	}

	var err error
	if rec.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("corrupt amount %q: %w", amount, err)
	}
	if rec.Fee, err = decimal.NewFromString(fee); err != nil {
		return nil, fmt.Errorf("corrupt fee %q: %w", fee, err)
	}
	if rec.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("corrupt total %q: %w", total, err)
	}
	if rec.Timestamp, err = time.Parse(transaction.TimeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("corrupt timestamp %q: %w", createdAt, err)
	}

	rec.Status = transaction.Status(status)
	return &rec, nil
}
