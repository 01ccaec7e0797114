package tracker

import (
	"context"
	"fmt"

	"cruscotto/internal/amqp"
	"cruscotto/internal/store"
)

// Note owns the quick note scalar. Saves are last-write-wins.
type Note struct {
	col    *store.Collections
	events *amqp.Client
}

func NewNote(col *store.Collections, events *amqp.Client) *Note {
	return &Note{col: col, events: events}
}

func (s *Note) Get(ctx context.Context) (string, error) {
	return s.col.Note(ctx)
}

func (s *Note) Save(ctx context.Context, text string) error {
	if err := s.col.SaveNote(ctx, text); err != nil {
		return fmt.Errorf("save note: %w", err)
	}

	publishChange(ctx, s.events, store.KeyNote, amqp.OpSave, 0)
	return nil
}
