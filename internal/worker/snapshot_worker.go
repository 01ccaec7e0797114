// Package worker writes periodic and change-driven backup snapshots to
// a local directory, so there is always a recent export on disk even
// if the user never presses the export button.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cruscotto/internal/amqp"
	"cruscotto/internal/backup"
	applog "cruscotto/internal/log"
	"cruscotto/internal/store"
)

// SnapshotWorker exports the store to timestamped JSON files.
type SnapshotWorker struct {
	col *store.Collections
	dir string

	mu       sync.Mutex
	lastRun  time.Time
	debounce time.Duration
}

func NewSnapshotWorker(col *store.Collections, dir string) *SnapshotWorker {
	return &SnapshotWorker{
		col:      col,
		dir:      dir,
		debounce: 30 * time.Second,
	}
}

// Snapshot writes one backup export to the snapshot directory.
func (w *SnapshotWorker) Snapshot(ctx context.Context) (string, error) {
	doc, err := backup.Export(ctx, w.col)
	if err != nil {
		return "", fmt.Errorf("export backup: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}

	name := fmt.Sprintf("cruscotto-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot written",
		applog.FieldSnapshot, path,
		applog.FieldCount, len(doc))
	return path, nil
}

// HandleChangeMessage reacts to a collection change event. Bursts of
// mutations within the debounce window collapse into one snapshot.
func (w *SnapshotWorker) HandleChangeMessage(ctx context.Context, msg *amqp.CollectionChangedMessage) error {
	w.mu.Lock()
	if time.Since(w.lastRun) < w.debounce {
		w.mu.Unlock()
		slog.DebugContext(ctx, "Snapshot debounced",
			applog.FieldCollection, msg.Collection,
			applog.FieldOperation, msg.Op)
		return nil
	}
	w.lastRun = time.Now()
	w.mu.Unlock()

	if _, err := w.Snapshot(ctx); err != nil {
		return fmt.Errorf("snapshot after change (%s/%s): %w", msg.Collection, msg.Op, err)
	}
	return nil
}

// RunPeriodic snapshots on a fixed interval until the context is done.
func (w *SnapshotWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Periodic snapshots started", "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Periodic snapshots stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.Snapshot(ctx); err != nil {
				// Keep ticking; the next interval may succeed.
				slog.ErrorContext(ctx, "Periodic snapshot failed", applog.FieldError, err)
			}
		}
	}
}
