package transaction

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// TimeLayout is the timestamp format used on the wire and in the mirror file.
const TimeLayout = "2006-01-02 15:04:05"

type Record struct {
	ID        string
	Method    string
	Amount    decimal.Decimal
	Fee       decimal.Decimal
	Total     decimal.Decimal
	Status    Status
	Timestamp time.Time
	Details   string
}

func New(id, methodName string, amount, fee decimal.Decimal, status Status, details string, at time.Time) *Record {
	return &Record{
		ID:        id,
		Method:    methodName,
		Amount:    amount,
		Fee:       fee,
		Total:     amount.Add(fee),
		Status:    status,
		Timestamp: at,
		Details:   details,
	}
}

// seq starts at the process boot time in nanoseconds so ids stay unique
// across restarts of the same mirror file; the atomic increment keeps
// back-to-back attempts from colliding the way a coarse clock would.
var seq atomic.Int64

func init() {
	seq.Store(time.Now().UnixNano())
}

func NextID() string {
	return fmt.Sprintf("TXN%d", seq.Add(1))
}
