package method

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKind = errors.New("unknown payment method")

// New builds a not-yet-validated Method from a kind selector and the raw
// form fields. Missing fields come through empty and surface later in
// Validate, never here.
func New(kind string, fields map[string]string) (*Method, error) {
	switch Kind(strings.ToUpper(strings.TrimSpace(kind))) {
	case CreditCard:
		return &Method{
			Kind:       CreditCard,
			CardNumber: fields["cardNumber"],
			HolderName: fields["holderName"],
			ExpiryDate: fields["expiryDate"],
			CVV:        fields["cvv"],
		}, nil

	case DebitCard:
		return &Method{
			Kind:       DebitCard,
			CardNumber: fields["cardNumber"],
			HolderName: fields["holderName"],
			ExpiryDate: fields["expiryDate"],
			CVV:        fields["cvv"],
		}, nil

	case UPI:
		return &Method{
			Kind:  UPI,
			UPIID: fields["upiId"],
		}, nil

	case NetBanking:
		return &Method{
			Kind:          NetBanking,
			BankName:      fields["bankName"],
			AccountNumber: fields["accountNumber"],
		}, nil

	case Wallet:
		return &Method{
			Kind:           Wallet,
			WalletProvider: fields["walletProvider"],
			MobileNumber:   fields["mobileNumber"],
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}
