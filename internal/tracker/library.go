package tracker

import (
	"context"
	"fmt"

	"cruscotto/internal/amqp"
	"cruscotto/internal/core"
	"cruscotto/internal/store"
)

// Library owns the media library collection.
type Library struct {
	col    *store.Collections
	events *amqp.Client
	ids    *core.IDGenerator
}

func NewLibrary(col *store.Collections, events *amqp.Client, ids *core.IDGenerator) *Library {
	if ids == nil {
		ids = core.NewIDGenerator()
	}
	return &Library{col: col, events: events, ids: ids}
}

func (s *Library) List(ctx context.Context) ([]core.LibraryItem, error) {
	return s.col.Library(ctx)
}

func (s *Library) Add(ctx context.Context, title, author, itemType string, rating int, cover string) (core.LibraryItem, error) {
	item := core.LibraryItem{
		ID:     s.ids.Next(),
		Title:  title,
		Author: author,
		Type:   itemType,
		Rating: rating,
		Cover:  cover,
	}
	if err := item.Validate(); err != nil {
		return core.LibraryItem{}, err
	}

	items, err := s.col.Library(ctx)
	if err != nil {
		return core.LibraryItem{}, fmt.Errorf("read library collection: %w", err)
	}
	items = append(items, item)
	if err := s.col.SaveLibrary(ctx, items); err != nil {
		return core.LibraryItem{}, fmt.Errorf("save library collection: %w", err)
	}

	publishChange(ctx, s.events, store.KeyLibrary, amqp.OpAdd, item.ID)
	return item, nil
}

func (s *Library) Remove(ctx context.Context, id int64) error {
	items, err := s.col.Library(ctx)
	if err != nil {
		return fmt.Errorf("read library collection: %w", err)
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if err := s.col.SaveLibrary(ctx, kept); err != nil {
		return fmt.Errorf("save library collection: %w", err)
	}

	publishChange(ctx, s.events, store.KeyLibrary, amqp.OpRemove, id)
	return nil
}
