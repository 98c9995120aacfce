package main

import (
	"log"
	"net/http"

	"github.com/rcarvalho-pb/payment_gateway-go/internal/application/checkout"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/config"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/domain/event"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/domain/transaction"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/infra/logging"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/infra/metrics"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/infrastructure/eventbus"
	httpapi "github.com/rcarvalho-pb/payment_gateway-go/internal/infrastructure/http"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/infrastructure/persistence/csvfile"
	"github.com/rcarvalho-pb/payment_gateway-go/internal/infrastructure/persistence/sqlite"
)

func main() {
	cfg := config.Load()

	logger, err := logging.NewZapLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal(err)
	}

	bus := eventbus.NewInMemoryBus()
	counters := &metrics.Counters{}

	service := &checkout.Service{
		Store:    store,
		EventBus: bus,
		Logger:   logger,
		Metrics:  counters,
		Executor: &checkout.RandomExecutor{FailurePercent: cfg.FailurePercent},
		Delay:    cfg.ProcessingDelay,
	}

	bus.Subscribe(
		event.CheckoutSucceeded,
		func(evt event.Event) error {
			logger.Info("checkout outcome", map[string]any{"event": evt.Payload})
			return nil
		},
	)

	bus.Subscribe(
		event.CheckoutFailed,
		func(evt event.Event) error {
			logger.Info("checkout outcome", map[string]any{"event": evt.Payload})
			return nil
		},
	)

	handler := &httpapi.CheckoutHandler{
		Service: service,
		Store:   store,
	}

	router := httpapi.NewRouter(handler)

	logger.Info("payment gateway listening", map[string]any{
		"addr":  cfg.Addr,
		"store": cfg.Store,
	})
	log.Fatal(http.ListenAndServe(cfg.Addr, router))
}

func openStore(cfg config.Config) (transaction.Store, error) {
	if cfg.Store == config.StoreSQLite {
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.RunMigrations(db); err != nil {
			return nil, err
		}
		return sqlite.NewTransactionRepository(db), nil
	}

	return csvfile.Open(cfg.CSVPath)
}
