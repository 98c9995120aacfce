package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_gateway-go/internal/application/checkout"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/domain/transaction"
)

type CheckoutHandler struct {
	Service *checkout.Service
	Store   transaction.Store
}

type CheckoutRequest struct {
	Kind   string            `json:"kind"`
	Amount string            `json:"amount"`
	Fields map[string]string `json:"fields"`
}

type RecordResponse struct {
	TransactionID string `json:"transaction_id"`
	Method        string `json:"method"`
	Amount        string `json:"amount"`
	Fee           string `json:"fee"`
	Total         string `json:"total"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	Details       string `json:"details"`
}

type CheckoutFailureResponse struct {
	Error         string `json:"error"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type SummaryResponse struct {
	Count        int    `json:"count"`
	SuccessCount int    `json:"success_count"`
	TotalRevenue string `json:"total_revenue"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m, err := method.New(req.Kind, req.Fields)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	// one worker per attempt; the handler is the display surface awaiting it
	res := <-h.Service.Submit(r.Context(), m, amount)

	if res.Err != nil {
		if errors.Is(res.Err, checkout.ErrInvalidAmount) {
			http.Error(w, res.Err.Error(), http.StatusBadRequest)
			return
		}

		body := CheckoutFailureResponse{Error: res.Err.Error()}
		if res.Record != nil {
			body.TransactionID = res.Record.ID
		}
		writeJSON(w, http.StatusPaymentRequired, body)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(res.Record))
}

func (h *CheckoutHandler) ListTransactions(w http.ResponseWriter, _ *http.Request) {
	records, err := h.Store.All()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *CheckoutHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	records, err := h.Store.All()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	successCount, err := h.Store.SuccessCount()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	revenue, err := h.Store.TotalRevenue()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponse{
		Count:        len(records),
		SuccessCount: successCount,
		TotalRevenue: revenue.StringFixed(2),
	})
}

func toRecordResponse(rec *transaction.Record) RecordResponse {
	return RecordResponse{
		TransactionID: rec.ID,
		Method:        rec.Method,
		Amount:        rec.Amount.StringFixed(2),
		Fee:           rec.Fee.StringFixed(2),
		Total:         rec.Total.StringFixed(2),
		Status:        string(rec.Status),
		Timestamp:     rec.Timestamp.Format(transaction.TimeLayout),
		Details:       rec.Details,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
