package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"ovona-planner/internal/app"
	"ovona-planner/internal/catalog"
	"ovona-planner/internal/config"
	"ovona-planner/internal/database"
	"ovona-planner/internal/llm"
	"ovona-planner/internal/metrics"
	"ovona-planner/internal/planner"
	"ovona-planner/internal/pricing"
	"ovona-planner/internal/profile"
	"ovona-planner/internal/shopping"
)

// defaultScrapeList mirrors the staple ingredient set the catalog was
// originally built from.
var defaultScrapeList = []string{
	"chicken breast", "brown rice", "broccoli", "salmon", "oats", "eggs",
	"greek yogurt", "banana", "almonds", "avocado", "spinach", "sweet potato",
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

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
	if cat.Len() == 0 {
		log.Println("Price catalog is empty; all prices will be fallback estimates.")
	}

	fallback, err := decimal.NewFromString(cfg.FallbackPrice)
	if err != nil {
		log.Fatalf("Invalid FALLBACK_PRICE %q: %v", cfg.FallbackPrice, err)
	}
	engine := pricing.NewEngine(cat, pricing.WithFallbackPrice(fallback))

	textGen := newTextGenerator(ctx, cfg)

	mealPlanner := planner.NewPlanner(textGen, engine)
	metricsStore := metrics.NewStore(db.SQL)

	application := app.NewApp(
		cfg,
		mealPlanner,
		planner.NewRepository(db.SQL),
		shopping.NewRepository(db.SQL),
		profile.NewRepository(db.SQL),
		catalogRepo,
		catalog.NewScraper(),
		metricsStore,
	)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		profileName := planCmd.String("profile", "", "Profile name (defaults to the single stored profile)")
		days := planCmd.Int("days", cfg.DefaultDays, "Number of days (1-7)")
		planCmd.Parse(os.Args[2:])

		if *days < 1 || *days > 7 {
			log.Fatalf("days must be between 1 and 7, got %d", *days)
		}
		if err := application.GeneratePlan(ctx, *profileName, *days); err != nil {
			log.Fatalf("Plan generation failed: %v", err)
		}
	case "extract":
		extractCmd := flag.NewFlagSet("extract", flag.ExitOnError)
		file := extractCmd.String("file", "", "Path to a meal plan text file")
		extractCmd.Parse(os.Args[2:])

		if *file == "" {
			log.Fatal("extract requires -file")
		}
		if err := application.ExtractFile(ctx, *file); err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}
	case "profile":
		profileCmd := flag.NewFlagSet("profile", flag.ExitOnError)
		name := profileCmd.String("name", "", "Name")
		gender := profileCmd.String("gender", "Other", "Gender (Male/Female/Other)")
		weight := profileCmd.Int("weight", 70, "Weight in kg")
		lifestyle := profileCmd.String("lifestyle", "Sedentary", "Lifestyle (Sedentary/Lightly Active/Active/Athlete)")
		goal := profileCmd.String("goal", "Maintain weight", "Goal (Lose fat/Maintain weight/Build muscle)")
		allergies := profileCmd.String("allergies", "", "Allergies, comma-separated")
		diet := profileCmd.String("diet", "Standard", "Diet type")
		dislikes := profileCmd.String("dislikes", "", "Ingredients to avoid")
		profileCmd.Parse(os.Args[2:])

		err := application.SaveProfile(ctx, profile.Profile{
			Name:      *name,
			Gender:    *gender,
			WeightKg:  *weight,
			Lifestyle: *lifestyle,
			Goal:      *goal,
			Allergies: *allergies,
			DietType:  *diet,
			Dislikes:  *dislikes,
		})
		if err != nil {
			log.Fatalf("Failed to save profile: %v", err)
		}
	case "scrape-prices":
		scrapeCmd := flag.NewFlagSet("scrape-prices", flag.ExitOnError)
		items := scrapeCmd.String("items", "", "Comma-separated ingredient list (defaults to the built-in staples)")
		scrapeCmd.Parse(os.Args[2:])

		list := defaultScrapeList
		if *items != "" {
			list = nil
			for _, item := range strings.Split(*items, ",") {
				if item = strings.TrimSpace(item); item != "" {
					list = append(list, item)
				}
			}
		}
		if err := application.ScrapePrices(ctx, list); err != nil {
			log.Fatalf("Price scraping failed: %v", err)
		}
	case "import-catalog":
		importCmd := flag.NewFlagSet("import-catalog", flag.ExitOnError)
		file := importCmd.String("file", "", "Path to a scraped price JSON file")
		importCmd.Parse(os.Args[2:])

		if *file == "" {
			log.Fatal("import-catalog requires -file")
		}
		if err := application.ImportCatalog(ctx, *file); err != nil {
			log.Fatalf("Catalog import failed: %v", err)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// newTextGenerator picks the plan generator for the configured provider.
func newTextGenerator(ctx context.Context, cfg *config.Config) llm.TextGenerator {
	if cfg.LLMProvider == "gemini" {
		client, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		return client
	}
	return llm.NewGroqClient(cfg)
}

func printUsage() {
	fmt.Println("Usage: ovona-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan             Generate a meal plan and derive calories + shopping list")
	fmt.Println("  extract          Run extraction and costing over an existing plan file")
	fmt.Println("  profile          Create or update a user profile")
	fmt.Println("  scrape-prices    Build the price catalog from the retailer")
	fmt.Println("  import-catalog   Import a scraped price JSON file")
	fmt.Println("  metrics-cleanup  Remove old metric records")
}
