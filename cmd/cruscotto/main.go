package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cruscotto/internal/backend"
	"cruscotto/internal/cli"
	"cruscotto/internal/core"
	apphttp "cruscotto/internal/http"
	applog "cruscotto/internal/log"
	"cruscotto/internal/seed"
	"cruscotto/internal/store"
	"cruscotto/internal/tracker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	result := cli.OpenStore(logger, cfg)
	defer result.Cleanup()

	events := backend.OpenEventClient(cfg)
	if events != nil {
		defer events.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	col := store.NewCollections(result.KV)
	today := core.TodayKey(time.Now())

	// Seed once from the legacy data.json payload, if configured. A
	// fetch failure is not fatal: the dashboard starts empty with the
	// fallback greeting, like the first build did.
	if cfg.SeedFile != "" || cfg.SeedURL != "" {
		if err := runSeed(ctx, result, cfg.SeedFile, cfg.SeedURL, today); err != nil {
			logger.Warn("Seed import failed, starting with empty collections", "error", err)
		}
	}

	// Fold any leftover per-habit boolean keys from the earliest build
	// into completedDates.
	if err := seed.MigrateLegacyHabitKeys(ctx, result.KV, today); err != nil {
		logger.Error("Legacy habit key migration failed", "error", err)
		os.Exit(1)
	}

	ids := core.NewIDGenerator()
	srv := apphttp.NewServer(":"+cfg.Port,
		tracker.NewFinance(col, events, ids),
		tracker.NewHabits(col, events, ids),
		tracker.NewLibrary(col, events, ids),
		tracker.NewNote(col, events),
		col,
		cfg.MonthlyBudget)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting cruscotto server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"budget", cfg.MonthlyBudget)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

func runSeed(ctx context.Context, result *backend.Result, file, url, today string) error {
	var (
		payload *seed.Payload
		err     error
	)
	if file != "" {
		payload, err = seed.FromFile(file)
	} else {
		payload, err = seed.FetchURL(ctx, url)
	}
	if err != nil {
		return err
	}
	return seed.Apply(ctx, result.KV, payload, today)
}
