// Package backup implements the export/import round trip: one JSON
// document bundling the four tracked keys.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"cruscotto/internal/core"
	"cruscotto/internal/store"
)

// ErrMalformedBackup marks an import payload that does not parse as a
// backup document. Nothing is written when it is returned.
var ErrMalformedBackup = errors.New("malformed backup document")

// Document is the export shape: always exactly these four fields, with
// never-written collections exported as empty arrays.
type Document struct {
	Finance   []core.Transaction `json:"finance"`
	Habits    []core.Habit       `json:"habits"`
	Library   []core.LibraryItem `json:"library"`
	QuickNote string             `json:"quick_note"`
}

// importDocument keeps each field raw so that import can overwrite the
// stored value wholesale without imposing structure on the entities.
// Anything unreadable inside a field surfaces later as a malformed
// stored collection, which reads back as empty.
type importDocument struct {
	Finance   json.RawMessage `json:"finance"`
	Habits    json.RawMessage `json:"habits"`
	Library   json.RawMessage `json:"library"`
	QuickNote json.RawMessage `json:"quick_note"`
}

// Export serializes the four tracked keys into one backup document.
func Export(ctx context.Context, col *store.Collections) ([]byte, error) {
	doc := Document{}
	var err error

	if doc.Finance, err = col.Finance(ctx); err != nil {
		return nil, fmt.Errorf("export finance: %w", err)
	}
	if doc.Habits, err = col.Habits(ctx); err != nil {
		return nil, fmt.Errorf("export habits: %w", err)
	}
	if doc.Library, err = col.Library(ctx); err != nil {
		return nil, fmt.Errorf("export library: %w", err)
	}
	if doc.QuickNote, err = col.Note(ctx); err != nil {
		return nil, fmt.Errorf("export quick note: %w", err)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup document: %w", err)
	}
	return raw, nil
}

// Import overwrites each key that is present and non-null in the
// payload. A payload that does not parse as a JSON object fails with
// ErrMalformedBackup before anything is written. Fields are applied
// one at a time in a fixed order; there is no atomicity across fields,
// so a write failure can leave earlier fields applied.
func Import(ctx context.Context, kv store.KV, payload []byte) error {
	var doc importDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}

	fields := []struct {
		key string
		raw json.RawMessage
	}{
		{store.KeyFinance, doc.Finance},
		{store.KeyHabits, doc.Habits},
		{store.KeyLibrary, doc.Library},
		{store.KeyNote, doc.QuickNote},
	}

	for _, f := range fields {
		if !present(f.raw) {
			continue
		}
		if err := kv.Put(ctx, f.key, f.raw); err != nil {
			return fmt.Errorf("import %s: %w", f.key, err)
		}
		slog.InfoContext(ctx, "Restored collection from backup", "key", f.key, "bytes", len(f.raw))
	}

	return nil
}

// present reports whether a field was provided and is not JSON null.
func present(raw json.RawMessage) bool {
	return raw != nil && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
