package main

import (
	"context"
	"flag"
	"log"

	"cardwise/internal/catalog"
	"cardwise/internal/repository"
	"cardwise/pkg/config"
	"cardwise/pkg/logger"
	"cardwise/pkg/postgres"

	"go.uber.org/zap"
)

const createCardsTable = `
CREATE TABLE IF NOT EXISTS cards (
	seq                bigserial PRIMARY KEY,
	id                 text NOT NULL UNIQUE,
	bank               text NOT NULL,
	name               text NOT NULL,
	categories         jsonb NOT NULL DEFAULT '[]',
	benefits           jsonb NOT NULL DEFAULT '{}',
	min_income         bigint NOT NULL DEFAULT 0,
	min_credit_score   int NOT NULL DEFAULT 0,
	bank_customer_only boolean NOT NULL DEFAULT false,
	tier               text NOT NULL DEFAULT 'standard',
	links              jsonb NOT NULL DEFAULT '[]'
)`

// Seeds the cards table from the catalog JSON file. The load is replace-all:
// existing rows are dropped so the table mirrors the file exactly.
func main() {
	catalogPath := flag.String("catalog", "", "path to the catalog JSON file (defaults to CATALOG_PATH)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	path := *catalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}

	// Validate the file before touching the database.
	cat, err := catalog.LoadFile(path, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load catalog file", zap.Error(err))
	}

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if _, err := db.Exec(ctx, createCardsTable); err != nil {
		appLogger.Fatal("Failed to create cards table", zap.Error(err))
	}

	cardRepo := repository.NewCardRepository(db, appLogger)

	appLogger.Info("Seeding card catalog", zap.String("path", path), zap.Int("cards", cat.Len()))

	if err := cardRepo.DeleteAll(ctx); err != nil {
		appLogger.Fatal("Failed to clear cards table", zap.Error(err))
	}
	if err := cardRepo.CreateBatch(ctx, cat.All()); err != nil {
		appLogger.Fatal("Failed to insert cards", zap.Error(err))
	}

	appLogger.Info("Card catalog seeded successfully", zap.Int("cards", cat.Len()))
}
