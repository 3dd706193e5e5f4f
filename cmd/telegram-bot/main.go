package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"ovona-planner/internal/catalog"
	"ovona-planner/internal/config"
	"ovona-planner/internal/database"
	"ovona-planner/internal/llm"
	"ovona-planner/internal/metrics"
	"ovona-planner/internal/planner"
	"ovona-planner/internal/pricing"
	"ovona-planner/internal/profile"
	"ovona-planner/internal/shopping"
	"ovona-planner/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramWebhookURL == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL must be set for the bot")
	}

	ctx := context.Background()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	catalogRepo := catalog.NewRepository(db.SQL)
	cat, err := catalogRepo.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load price catalog: %v", err)
	}

	fallback, err := decimal.NewFromString(cfg.FallbackPrice)
	if err != nil {
		log.Fatalf("Invalid FALLBACK_PRICE %q: %v", cfg.FallbackPrice, err)
	}
	engine := pricing.NewEngine(cat, pricing.WithFallbackPrice(fallback))

	var textGen llm.TextGenerator
	if cfg.LLMProvider == "gemini" {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer geminiClient.Close()
		textGen = geminiClient
	} else {
		textGen = llm.NewGroqClient(cfg)
	}

	mealPlanner := planner.NewPlanner(textGen, engine)
	metricsStore := metrics.NewStore(db.SQL)

	bot, err := telegram.NewBot(
		cfg,
		mealPlanner,
		planner.NewRepository(db.SQL),
		shopping.NewRepository(db.SQL),
		profile.NewRepository(db.SQL),
		metricsStore,
	)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
