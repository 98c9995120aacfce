package event

type CheckoutSucceededPayload struct {
	AttemptID     string
	TransactionID string
	Method        string
	Amount        string
	Total         string
}

type CheckoutFailedPayload struct {
	AttemptID     string
	TransactionID string
	Method        string
	Reason        string
}
