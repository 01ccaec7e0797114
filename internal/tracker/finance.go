package tracker

import (
	"context"
	"fmt"

	"cruscotto/internal/amqp"
	"cruscotto/internal/core"
	"cruscotto/internal/store"
)

// Finance owns the transaction collection.
type Finance struct {
	col    *store.Collections
	events *amqp.Client
	ids    *core.IDGenerator
}

func NewFinance(col *store.Collections, events *amqp.Client, ids *core.IDGenerator) *Finance {
	if ids == nil {
		ids = core.NewIDGenerator()
	}
	return &Finance{col: col, events: events, ids: ids}
}

func (s *Finance) List(ctx context.Context) ([]core.Transaction, error) {
	return s.col.Finance(ctx)
}

// Add creates a transaction, appends it to the collection and persists
// the whole collection back. Validation failures reject the add
// without writing anything.
func (s *Finance) Add(ctx context.Context, name string, amount float64, txType string) (core.Transaction, error) {
	tx := core.Transaction{
		ID:     s.ids.Next(),
		Name:   name,
		Amount: amount,
		Type:   txType,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	items, err := s.col.Finance(ctx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("read finance collection: %w", err)
	}
	items = append(items, tx)
	if err := s.col.SaveFinance(ctx, items); err != nil {
		return core.Transaction{}, fmt.Errorf("save finance collection: %w", err)
	}

	publishChange(ctx, s.events, store.KeyFinance, amqp.OpAdd, tx.ID)
	return tx, nil
}

// Remove filters the transaction with the given id out of the
// collection. Removing an unknown id is a no-op, but the collection is
// persisted either way.
func (s *Finance) Remove(ctx context.Context, id int64) error {
	items, err := s.col.Finance(ctx)
	if err != nil {
		return fmt.Errorf("read finance collection: %w", err)
	}

	kept := items[:0]
	for _, tx := range items {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if err := s.col.SaveFinance(ctx, kept); err != nil {
		return fmt.Errorf("save finance collection: %w", err)
	}

	publishChange(ctx, s.events, store.KeyFinance, amqp.OpRemove, id)
	return nil
}

// Summary computes the spend position against the given budget.
func (s *Finance) Summary(ctx context.Context, budget float64) (core.FinanceSummary, error) {
	items, err := s.col.Finance(ctx)
	if err != nil {
		return core.FinanceSummary{}, fmt.Errorf("read finance collection: %w", err)
	}
	return core.ComputeFinanceSummary(items, budget), nil
}
