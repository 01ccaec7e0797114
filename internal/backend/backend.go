// Package backend selects and wires a Collection Store implementation
// from configuration.
package backend

import (
	"fmt"
	"log/slog"

	"cruscotto/internal/amqp"
	"cruscotto/internal/config"
	applog "cruscotto/internal/log"
	"cruscotto/internal/store"
	"cruscotto/internal/store/memory"
	"cruscotto/internal/store/sqlite"
)

// Type identifies a Collection Store backend.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) IsValid() bool {
	return t == MemoryBackend || t == SQLiteBackend
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the opened store and its cleanup function.
type Result struct {
	KV      store.KV
	Cleanup CleanupFunc
}

// Open creates the configured Collection Store backend.
func Open(cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SQLiteBackend:
		kv, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		slog.Info("Initialized sqlite store", applog.FieldBackend, t, "db_path", cfg.SQLiteDBPath)
		return &Result{KV: kv, Cleanup: kv.Close}, nil
	default:
		slog.Info("Initialized memory store", applog.FieldBackend, t)
		return &Result{KV: memory.New(), Cleanup: func() error { return nil }}, nil
	}
}

// OpenEventClient creates the optional AMQP client. A missing URL or a
// connection failure disables eventing rather than failing startup.
func OpenEventClient(cfg *config.Config) *amqp.Client {
	if cfg.AMQPURL == "" {
		slog.Info("AMQP disabled - change events will not be published")
		return nil
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Warn("Failed to initialize AMQP client, continuing without events", applog.FieldError, err)
		return nil
	}

	slog.Info("Initialized AMQP client",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)
	return client
}
