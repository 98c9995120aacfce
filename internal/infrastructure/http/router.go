package httpapi

import "net/http"

func NewRouter(handler *CheckoutHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /checkout", handler.Checkout)
	mux.HandleFunc("GET /transactions", handler.ListTransactions)
	mux.HandleFunc("GET /transactions/summary", handler.Summary)

	return mux
}
