package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cardwise/internal/api"
	"cardwise/internal/api/handlers"
	"cardwise/internal/catalog"
	"cardwise/internal/models"
	"cardwise/internal/repository"
	"cardwise/internal/service"
	"cardwise/pkg/auth"
	"cardwise/pkg/config"
	"cardwise/pkg/logger"
	"cardwise/pkg/postgres"

	"go.uber.org/zap"
)

// @title Cardwise API
// @version 1.0
// @description Conversational credit card advisor over a curated catalog
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@cardwise.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Cardwise service")

	ctx := context.Background()

	// Load the card catalog. Any validation failure here is fatal.
	cat, err := loadCatalog(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load card catalog", zap.Error(err))
	}

	// Initialize the text generator. The advisor degrades to catalog-only
	// answers without one, so a missing key is not fatal.
	var generator service.Generator
	var llmService *service.LLMService
	if cfg.GigaChat.APIKey != "" {
		llmService, err = service.NewLLMService(&cfg.GigaChat, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
		}
		defer llmService.Close()
		generator = llmService
	} else {
		appLogger.Warn("GIGACHAT_API_KEY not set, answers will come from catalog data only")
	}

	fetcher := service.NewFetchService(&cfg.Fetch, appLogger)

	advisor := service.NewAdvisorService(
		cat,
		generator,
		fetcher,
		models.DefaultScoringWeights(),
		cfg.GigaChat.RequestTimeout,
		cfg.Fetch.MaxContentChars,
		appLogger,
	)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(advisor, jwtManager, appLogger)

	// Setup router
	app := api.SetupRouter(sessionHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

// loadCatalog reads cards from the configured source: the bundled JSON file
// or a seeded Postgres table.
func loadCatalog(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) (*catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case "postgres":
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", catalog.ErrDataLoad, err)
		}
		defer db.Close()

		cardRepo := repository.NewCardRepository(db, appLogger)
		records, err := cardRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", catalog.ErrDataLoad, err)
		}
		appLogger.Info("Card catalog loaded from database", zap.Int("cards", len(records)))
		return catalog.New(records)
	default:
		return catalog.LoadFile(cfg.Catalog.Path, appLogger)
	}
}
