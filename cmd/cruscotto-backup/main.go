// The cruscotto-backup binary exports or restores a backup document
// against the configured store, without going through the server.
//
//	cruscotto-backup -export dump.json
//	cruscotto-backup -import dump.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cruscotto/internal/backup"
	"cruscotto/internal/cli"
	applog "cruscotto/internal/log"
	"cruscotto/internal/store"
)

func main() {
	exportPath := flag.String("export", "", "write a backup document to the given file")
	importPath := flag.String("import", "", "restore collections from the given backup file")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentBackup)

	if (*exportPath == "") == (*importPath == "") {
		fmt.Fprintln(os.Stderr, "usage: cruscotto-backup -export <file> | -import <file>")
		os.Exit(2)
	}

	cfg := cli.LoadAndValidateConfig(logger)
	result := cli.OpenStore(logger, cfg)
	defer result.Cleanup()

	ctx := context.Background()
	col := store.NewCollections(result.KV)

	if *exportPath != "" {
		doc, err := backup.Export(ctx, col)
		if err != nil {
			logger.Error("Export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*exportPath, doc, 0644); err != nil {
			logger.Error("Failed to write backup file", "error", err, "path", *exportPath)
			os.Exit(1)
		}
		logger.Info("Backup exported", "path", *exportPath, "bytes", len(doc))
		return
	}

	payload, err := os.ReadFile(*importPath)
	if err != nil {
		logger.Error("Failed to read backup file", "error", err, "path", *importPath)
		os.Exit(1)
	}
	if err := backup.Import(ctx, result.KV, payload); err != nil {
		logger.Error("Import failed", "error", err, "path", *importPath)
		os.Exit(1)
	}
	logger.Info("Backup imported", "path", *importPath)
}
