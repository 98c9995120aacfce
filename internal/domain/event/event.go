package event

type Type string

const (
	CheckoutSucceeded Type = "SUCCEEDED"
	CheckoutFailed    Type = "FAILED"
)

type Event struct {
	Type    Type
	Payload any
}
