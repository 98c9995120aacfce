package transaction

import "github.com/shopspring/decimal"

type Store interface {
	Append(*Record) error
	All() ([]*Record, error)
	SuccessCount() (int, error)
	TotalRevenue() (decimal.Decimal, error)
}
