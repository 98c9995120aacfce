package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_gateway-go/internal/application/checkout"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/domain/transaction"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/infra/metrics"
	httpapi "github.com/rcarvalho-pb/payment_gateway-go/internal/infrastructure/http"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/infrastructure/persistence/csvfile"
)

type fixedExecutor struct {
	outcome bool
}

func (f *fixedExecutor) Execute() bool {
	return f.outcome
}

type noopLogger struct{}

func (n *noopLogger) Info(string, map[string]any)  {}
func (n *noopLogger) Error(string, map[string]any) {}

func newTestRouter(t *testing.T, outcome bool) (http.Handler, *csvfile.Ledger) {
	t.Helper()

	ledger, err := csvfile.Open(filepath.Join(t.TempDir(), "history.csv"))
	require.NoError(t, err)

	service := &checkout.Service{
		Store:    ledger,
		Logger:   &noopLogger{},
		Metrics:  &metrics.Counters{},
		Executor: &fixedExecutor{outcome: outcome},
	}

	handler := &httpapi.CheckoutHandler{Service: service, Store: ledger}
	return httpapi.NewRouter(handler), ledger
}

func postCheckout(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckout_Success(t *testing.T) {
	router, ledger := newTestRouter(t, true)

	w := postCheckout(router, `{
		"kind": "Credit Card",
		"amount": "1000",
		"fields": {
			"cardNumber": "4111111111111111",
			"holderName": "Ana Souza",
			"expiryDate": "12/27",
			"cvv": "123"
		}
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp httpapi.RecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "SUCCESS", resp.Status)
	require.Equal(t, "20.00", resp.Fee)
	require.Equal(t, "1020.00", resp.Total)
	require.Regexp(t, `^TXN\d+$`, resp.TransactionID)

	records, err := ledger.All()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestCheckout_UnknownKindAppendsNothing(t *testing.T) {
	router, ledger := newTestRouter(t, true)

	w := postCheckout(router, `{"kind": "CRYPTO", "amount": "100", "fields": {}}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	records, err := ledger.All()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestCheckout_ValidationFailureStillAppendsFailedRecord(t *testing.T) {
	router, ledger := newTestRouter(t, true)

	w := postCheckout(router, `{"kind": "UPI", "amount": "500", "fields": {"upiId": "userpaytm"}}`)

	require.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp httpapi.CheckoutFailureResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "invalid UPI ID", resp.Error)
	require.NotEmpty(t, resp.TransactionID)

	records, err := ledger.All()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, transaction.StatusFailed, records[0].Status)
}

func TestCheckout_DeclinedByProcessor(t *testing.T) {
	router, ledger := newTestRouter(t, false)

	w := postCheckout(router, `{"kind": "UPI", "amount": "500", "fields": {"upiId": "user@paytm"}}`)

	require.Equal(t, http.StatusPaymentRequired, w.Code)

	records, err := ledger.All()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, transaction.StatusFailed, records[0].Status)
}

func TestCheckout_NonPositiveAmount(t *testing.T) {
	router, ledger := newTestRouter(t, true)

	w := postCheckout(router, `{"kind": "UPI", "amount": "-5", "fields": {"upiId": "user@paytm"}}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	records, err := ledger.All()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestListTransactionsAndSummary(t *testing.T) {
	router, _ := newTestRouter(t, true)

	postCheckout(router, `{"kind": "UPI", "amount": "500", "fields": {"upiId": "user@paytm"}}`)
	postCheckout(router, `{"kind": "UPI", "amount": "250", "fields": {"upiId": "userpaytm"}}`)

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var records []httpapi.RecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 2)

	req = httptest.NewRequest(http.MethodGet, "/transactions/summary", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary httpapi.SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, 2, summary.Count)
	require.Equal(t, 1, summary.SuccessCount)
	require.Equal(t, "500.00", summary.TotalRevenue)
}
