package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"ovona-planner/internal/catalog"
	"ovona-planner/internal/config"
	"ovona-planner/internal/metrics"
	"ovona-planner/internal/planner"
	"ovona-planner/internal/profile"
	"ovona-planner/internal/shopping"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	mealPlanner  *planner.Planner
	planRepo     *planner.Repository
	shoppingRepo *shopping.Repository
	profileRepo  *profile.Repository
	catalogRepo  *catalog.Repository
	scraper      *catalog.Scraper
	metricsStore *metrics.Store
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	mealPlanner *planner.Planner,
	planRepo *planner.Repository,
	shoppingRepo *shopping.Repository,
	profileRepo *profile.Repository,
	catalogRepo *catalog.Repository,
	scraper *catalog.Scraper,
	metricsStore *metrics.Store,
) *App {
	return &App{
		cfg:          cfg,
		mealPlanner:  mealPlanner,
		planRepo:     planRepo,
		shoppingRepo: shoppingRepo,
		profileRepo:  profileRepo,
		catalogRepo:  catalogRepo,
		scraper:      scraper,
		metricsStore: metricsStore,
	}
}

// GeneratePlan generates a meal plan for the named profile (or the single
// stored one), derives the calorie ledger and priced shopping list, persists
// both, and prints them.
func (a *App) GeneratePlan(ctx context.Context, profileName string, days int) error {
	prof, err := a.resolveProfile(ctx, profileName)
	if err != nil {
		return err
	}

	fmt.Printf("Generating a %d-day plan for %s (target %d kcal/day)...\n", days, prof.Name, prof.TargetCalories())

	result, meta, err := a.mealPlanner.GeneratePlan(ctx, *prof, days)
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}

	if err := a.metricsStore.RecordMeta(meta); err != nil {
		log.Printf("Warning: failed to record metrics: %v", err)
	}

	planID, err := a.planRepo.Save(ctx, prof.Name, result)
	if err != nil {
		log.Printf("Warning: failed to save plan: %v", err)
	} else {
		_, err := a.shoppingRepo.Save(ctx, &shopping.List{
			UserID:    prof.Name,
			PlanID:    planID,
			Items:     result.ShoppingList,
			TotalCost: result.TotalCost.StringFixed(2),
		})
		if err != nil {
			log.Printf("Warning: failed to save shopping list: %v", err)
		}
	}

	printResult(result)
	return nil
}

// ExtractFile runs the extraction and costing pipeline over an already
// generated plan stored in a text file.
func (a *App) ExtractFile(_ context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read plan file: %w", err)
	}

	printResult(a.mealPlanner.Analyze(string(data)))
	return nil
}

// ScrapePrices builds a fresh price catalog for the given ingredient list and
// stores it, replacing the previous catalog.
func (a *App) ScrapePrices(ctx context.Context, ingredients []string) error {
	entries := a.scraper.Scrape(ctx, ingredients)
	if err := a.catalogRepo.Replace(ctx, entries); err != nil {
		return fmt.Errorf("failed to store scraped catalog: %w", err)
	}
	fmt.Printf("Stored %d catalog entries.\n", len(entries))
	return nil
}

// ImportCatalog loads a scraped price file and stores it as the catalog.
func (a *App) ImportCatalog(ctx context.Context, path string) error {
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog file: %w", err)
	}
	if err := a.catalogRepo.Replace(ctx, cat.Entries()); err != nil {
		return fmt.Errorf("failed to store imported catalog: %w", err)
	}
	fmt.Printf("Imported %d catalog entries from %s.\n", cat.Len(), path)
	return nil
}

// SaveProfile stores a user profile.
func (a *App) SaveProfile(ctx context.Context, prof profile.Profile) error {
	if prof.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if err := a.profileRepo.Save(ctx, prof); err != nil {
		return err
	}
	fmt.Printf("Profile saved for %s (target %d kcal/day).\n", prof.Name, prof.TargetCalories())
	return nil
}

func (a *App) resolveProfile(ctx context.Context, name string) (*profile.Profile, error) {
	if name != "" {
		prof, err := a.profileRepo.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		if prof == nil {
			return nil, fmt.Errorf("no profile named %q; create one with the profile command", name)
		}
		return prof, nil
	}

	prof, err := a.profileRepo.Default(ctx)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, fmt.Errorf("no single stored profile to default to; pass -profile")
	}
	return prof, nil
}

func printResult(result *planner.PlanResult) {
	if len(result.Calories) > 0 {
		fmt.Println("\n=== CALORIES PER DAY ===")
		days := make([]int, 0, len(result.Calories))
		for day := range result.Calories {
			days = append(days, day)
		}
		sort.Ints(days)
		for _, day := range days {
			fmt.Printf("Day %d: %d kcal\n", day, result.Calories[day])
		}
	}

	fmt.Println("\n=== SHOPPING LIST ===")
	if len(result.ShoppingList) == 0 {
		fmt.Println("No ingredients found. No shopping list available.")
		return
	}
	for _, line := range result.ShoppingList {
		fmt.Println(line)
	}
	fmt.Printf("\n%s\n", shopping.FormatTotal(result.TotalCost))
	fmt.Println("(* = estimated price, no catalog match)")

	if len(result.StaplesUsed) > 0 {
		fmt.Println("\nPantry staples used (not priced):")
		for _, staple := range result.StaplesUsed {
			fmt.Printf("- %s\n", staple)
		}
	}
}
