package config

import (
	"os"
	"strconv"
	"time"
)

const (
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
)

type Config struct {
	Addr            string
	Store           string
	CSVPath         string
	DBPath          string
	FailurePercent  int
	ProcessingDelay time.Duration
}

func Load() Config {
	return Config{
		Addr:            getenv("GATEWAY_ADDR", ":8080"),
		Store:           getenv("GATEWAY_STORE", StoreCSV),
		CSVPath:         getenv("GATEWAY_CSV_PATH", "transaction_history.csv"),
		DBPath:          getenv("GATEWAY_DB_PATH", "payment_gateway.db"),
		FailurePercent:  getenvInt("GATEWAY_FAILURE_PERCENT", 10),
		ProcessingDelay: time.Duration(getenvInt("GATEWAY_PROCESSING_DELAY_MS", 2000)) * time.Millisecond,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
