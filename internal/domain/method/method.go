package method

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCard    = errors.New("invalid card details")
	ErrInvalidUPI     = errors.New("invalid UPI ID")
	ErrInvalidBank    = errors.New("bank name is required")
	ErrInvalidAccount = errors.New("invalid account number")
	ErrInvalidMobile  = errors.New("invalid mobile number")
)

type Kind string

const (
	CreditCard Kind = "CREDIT CARD"
	DebitCard  Kind = "DEBIT CARD"
	UPI        Kind = "UPI"
	NetBanking Kind = "NET BANKING"
	Wallet     Kind = "WALLET"
)

var (
	cardFeeRate       = decimal.NewFromFloat(0.02)
	netBankingFeeRate = decimal.NewFromFloat(0.01)
)

// Method is one chosen way to pay. The kind set is closed; only the
// fields belonging to the Kind are populated, the rest stay zero.
type Method struct {
	Kind Kind

	CardNumber string
	HolderName string
	ExpiryDate string
	CVV        string

	UPIID string

	BankName      string
	AccountNumber string

	WalletProvider string
	MobileNumber   string
}

func (m *Method) Name() string {
	switch m.Kind {
	case CreditCard:
		return "Credit Card"
	case DebitCard:
		return "Debit Card"
	case UPI:
		return "UPI"
	case NetBanking:
		return "Net Banking"
	case Wallet:
		return "Wallet"
	}
	return string(m.Kind)
}

func (m *Method) Validate() error {
	switch m.Kind {
	case CreditCard, DebitCard:
		if len(m.CardNumber) != 16 || !isDigits(m.CardNumber) {
			return ErrInvalidCard
		}
		if len(m.CVV) != 3 {
			return ErrInvalidCard
		}
		if strings.TrimSpace(m.HolderName) == "" {
			return ErrInvalidCard
		}
		return nil

	case UPI:
		if !strings.Contains(m.UPIID, "@") {
			return ErrInvalidUPI
		}
		return nil

	case NetBanking:
		if strings.TrimSpace(m.BankName) == "" {
			return ErrInvalidBank
		}
		if len(m.AccountNumber) < 8 {
			return ErrInvalidAccount
		}
		return nil

	case Wallet:
		if len(m.MobileNumber) != 10 {
			return ErrInvalidMobile
		}
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownKind, m.Kind)
}

// Fee is the processing fee for amount, rounded half-even to cents.
func (m *Method) Fee(amount decimal.Decimal) decimal.Decimal {
	switch m.Kind {
	case CreditCard, DebitCard:
		return amount.Mul(cardFeeRate).RoundBank(2)
	case NetBanking:
		return amount.Mul(netBankingFeeRate).RoundBank(2)
	}
	return decimal.Zero
}

// Details is the masked, display-safe description of the instrument.
func (m *Method) Details() string {
	switch m.Kind {
	case CreditCard, DebitCard:
		return fmt.Sprintf("%s - **** **** **** %s | %s", m.Name(), last4(m.CardNumber), m.HolderName)
	case UPI:
		return fmt.Sprintf("UPI - %s", m.UPIID)
	case NetBanking:
		return fmt.Sprintf("Net Banking - %s | A/C: ****%s", m.BankName, last4(m.AccountNumber))
	case Wallet:
		return fmt.Sprintf("Wallet - %s | %s", m.WalletProvider, m.MobileNumber)
	}
	return string(m.Kind)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func last4(s string) string {
	if len(s) < 4 {
		return s
	}
	return s[len(s)-4:]
}
