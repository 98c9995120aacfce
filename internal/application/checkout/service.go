package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zoobzio/clockz"

	"github.com/rcarvalho-pb/payment_gateway-go/internal/domain/event"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/domain/transaction"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/infra/logging"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/infra/metrics"
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrServiceUnavailable = errors.New("bank server is down. Please try again later")
)

type EventPublisher interface {
	Publish(event.Event) error
}

// Service runs one checkout attempt end to end: validate, price, simulate
// the external processor, append exactly one record to the store.
type Service struct {
	Store    transaction.Store
	EventBus EventPublisher
	Logger   logging.Logger
	Metrics  *metrics.Counters
	Executor Executor
	Clock    clockz.Clock
	Delay    time.Duration
}

type Result struct {
	AttemptID string
	Record    *transaction.Record
	Err       error
}

// Submit launches the attempt on its own goroutine and returns the channel
// the single Result is delivered on. Attempts are independent; there is no
// pool and no ordering across concurrent submissions.
func (s *Service) Submit(ctx context.Context, m *method.Method, amount decimal.Decimal) <-chan Result {
	ch := make(chan Result, 1)
	attemptID := uuid.NewString()

	go func() {
		rec, err := s.process(ctx, attemptID, m, amount)
		ch <- Result{AttemptID: attemptID, Record: rec, Err: err}
		close(ch)
	}()

	return ch
}

// Process runs the attempt synchronously on the caller's goroutine.
func (s *Service) Process(ctx context.Context, m *method.Method, amount decimal.Decimal) (*transaction.Record, error) {
	return s.process(ctx, uuid.NewString(), m, amount)
}

func (s *Service) process(ctx context.Context, attemptID string, m *method.Method, amount decimal.Decimal) (*transaction.Record, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	s.Logger.Info("processing checkout", map[string]any{
		"attempt-id": attemptID,
		"method":     m.Name(),
		"amount":     amount.StringFixed(2),
	})

	s.Metrics.IncProcessed()

	fee := m.Fee(amount)

	if err := m.Validate(); err != nil {
		s.Metrics.IncFailed()
		return s.finishFailed(attemptID, m, amount, fee, err)
	}

	if err := s.simulateProcessing(ctx); err != nil {
		s.Metrics.IncDeclined()
		return s.finishFailed(attemptID, m, amount, fee, err)
	}

	rec := transaction.New(
		transaction.NextID(),
		m.Name(),
		amount,
		fee,
		transaction.StatusSuccess,
		m.Details(),
		time.Now(),
	)

	s.append(attemptID, rec)
	s.Metrics.IncSucceeded()

	s.Logger.Info("checkout succeeded", map[string]any{
		"attempt-id":     attemptID,
		"transaction-id": rec.ID,
		"total":          rec.Total.StringFixed(2),
	})

	s.publish(event.Event{
		Type: event.CheckoutSucceeded,
		Payload: event.CheckoutSucceededPayload{
			AttemptID:     attemptID,
			TransactionID: rec.ID,
			Method:        rec.Method,
			Amount:        rec.Amount.StringFixed(2),
			Total:         rec.Total.StringFixed(2),
		},
	})

	return rec, nil
}

// simulateProcessing stands in for the external processor: a fixed delay on
// the injected clock, then the executor's accept/decline roll. The wait is
// the attempt's only suspension point and honors ctx.
func (s *Service) simulateProcessing(ctx context.Context) error {
	if s.Delay > 0 {
		select {
		case <-s.clock().After(s.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if !s.Executor.Execute() {
		return ErrServiceUnavailable
	}

	return nil
}

// finishFailed appends the FAILED record and re-raises cause to the caller.
// Every attempt that gets past amount parsing produces exactly one record.
func (s *Service) finishFailed(attemptID string, m *method.Method, amount, fee decimal.Decimal, cause error) (*transaction.Record, error) {
	rec := transaction.New(
		transaction.NextID(),
		m.Name(),
		amount,
		fee,
		transaction.StatusFailed,
		m.Details(),
		time.Now(),
	)

	s.append(attemptID, rec)

	s.Logger.Error("checkout failed", map[string]any{
		"attempt-id":     attemptID,
		"transaction-id": rec.ID,
		"method":         rec.Method,
		"reason":         cause.Error(),
	})

	s.publish(event.Event{
		Type: event.CheckoutFailed,
		Payload: event.CheckoutFailedPayload{
			AttemptID:     attemptID,
			TransactionID: rec.ID,
			Method:        rec.Method,
			Reason:        cause.Error(),
		},
	})

	return rec, cause
}

// append tolerates store errors: the attempt already resolved, so a mirror
// write failure is diagnosed and dropped instead of failing the checkout.
func (s *Service) append(attemptID string, rec *transaction.Record) {
	if err := s.Store.Append(rec); err != nil {
		s.Logger.Error("could not persist transaction", map[string]any{
			"attempt-id":     attemptID,
			"transaction-id": rec.ID,
			"error":          err.Error(),
		})
	}
}

func (s *Service) publish(evt event.Event) {
	if s.EventBus == nil {
		return
	}
	if err := s.EventBus.Publish(evt); err != nil {
		s.Logger.Error("could not publish event", map[string]any{
			"event-type": string(evt.Type),
			"error":      err.Error(),
		})
	}
}

func (s *Service) clock() clockz.Clock {
	if s.Clock == nil {
		return clockz.RealClock
	}
	return s.Clock
}
