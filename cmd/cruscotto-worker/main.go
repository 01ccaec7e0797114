// The cruscotto-worker binary keeps local backup snapshots fresh: it
// consumes collection change events from AMQP and also snapshots on a
// fixed interval as a safety net when eventing is down.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"cruscotto/internal/amqp"
	"cruscotto/internal/backend"
	"cruscotto/internal/cli"
	applog "cruscotto/internal/log"
	"cruscotto/internal/store"
	"cruscotto/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	result := cli.OpenStore(logger, cfg)
	defer result.Cleanup()

	col := store.NewCollections(result.KV)
	snap := worker.NewSnapshotWorker(col, cfg.SnapshotDir)

	events := backend.OpenEventClient(cfg)
	if events != nil {
		defer events.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Starting cruscotto-worker",
		"backend", cfg.DataBackend,
		"snapshot_dir", cfg.SnapshotDir,
		"interval", cfg.SnapshotInterval.String(),
		"amqp_enabled", events != nil)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return snap.RunPeriodic(gctx, cfg.SnapshotInterval)
	})

	if events != nil {
		g.Go(func() error {
			return events.ConsumeCollectionChanged(gctx, func(msg *amqp.CollectionChangedMessage) error {
				return snap.HandleChangeMessage(gctx, msg)
			})
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
