package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cruscotto/internal/core"
)

// Collections is the typed layer over the KV port. Reads decode the
// stored JSON; a value that fails to decode is treated exactly like an
// unset key and reads as an empty collection, with a warning in the
// log. That keeps a single corrupt value from taking the whole
// dashboard down. Transport errors from the backend do propagate.
type Collections struct {
	kv KV
}

func NewCollections(kv KV) *Collections {
	return &Collections{kv: kv}
}

// KV exposes the underlying port for callers that need raw access,
// such as backup import.
func (c *Collections) KV() KV {
	return c.kv
}

func (c *Collections) Finance(ctx context.Context) ([]core.Transaction, error) {
	return readCollection[core.Transaction](ctx, c.kv, KeyFinance)
}

func (c *Collections) SaveFinance(ctx context.Context, items []core.Transaction) error {
	return writeCollection(ctx, c.kv, KeyFinance, items)
}

func (c *Collections) Habits(ctx context.Context) ([]core.Habit, error) {
	return readCollection[core.Habit](ctx, c.kv, KeyHabits)
}

func (c *Collections) SaveHabits(ctx context.Context, items []core.Habit) error {
	return writeCollection(ctx, c.kv, KeyHabits, items)
}

func (c *Collections) Library(ctx context.Context) ([]core.LibraryItem, error) {
	return readCollection[core.LibraryItem](ctx, c.kv, KeyLibrary)
}

func (c *Collections) SaveLibrary(ctx context.Context, items []core.LibraryItem) error {
	return writeCollection(ctx, c.kv, KeyLibrary, items)
}

// Note returns the quick note, or the empty string when unset or
// unparseable.
func (c *Collections) Note(ctx context.Context) (string, error) {
	raw, ok, err := c.kv.Get(ctx, KeyNote)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", KeyNote, err)
	}
	if !ok {
		return "", nil
	}

	var note string
	if err := json.Unmarshal(raw, &note); err != nil {
		slog.Warn("Discarding malformed stored value", "key", KeyNote, "error", err)
		return "", nil
	}
	return note, nil
}

func (c *Collections) SaveNote(ctx context.Context, note string) error {
	raw, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", KeyNote, err)
	}
	if err := c.kv.Put(ctx, KeyNote, raw); err != nil {
		return fmt.Errorf("put %s: %w", KeyNote, err)
	}
	return nil
}

// UserName returns the display name stored by the seed import, if any.
func (c *Collections) UserName(ctx context.Context) (string, error) {
	raw, ok, err := c.kv.Get(ctx, KeyUserName)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", KeyUserName, err)
	}
	if !ok {
		return "", nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		slog.Warn("Discarding malformed stored value", "key", KeyUserName, "error", err)
		return "", nil
	}
	return name, nil
}

func (c *Collections) SaveUserName(ctx context.Context, name string) error {
	raw, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", KeyUserName, err)
	}
	if err := c.kv.Put(ctx, KeyUserName, raw); err != nil {
		return fmt.Errorf("put %s: %w", KeyUserName, err)
	}
	return nil
}

// readCollection decodes the sequence stored under key. A never-written
// or malformed value reads as an empty, non-nil slice.
func readCollection[T any](ctx context.Context, kv KV, key string) ([]T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("Discarding malformed stored collection", "key", key, "error", err)
		return []T{}, nil
	}
	if items == nil {
		// Stored "null" still reads as empty.
		items = []T{}
	}
	return items, nil
}

func writeCollection[T any](ctx context.Context, kv KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
